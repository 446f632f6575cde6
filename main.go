// Command hitscan triages game screen captures into target / no-target folders.
package main

import "github.com/JosiahBull/yolo-v8-explorations/cmd"

func main() {
	cmd.Execute()
}
