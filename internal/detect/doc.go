// Package detect decides whether a captured frame shows a target marker.
//
// A frame is scanned pixel by pixel. Pixels inside any ignored region (HUD
// elements such as the minimap or team portraits) are skipped; every other
// pixel is compared against the target color with a per-channel relative
// tolerance. The first matching pixel marks the frame as containing targets.
package detect
