// Package preview draws quick raster sketches of molecule graphs.
//
// A preview is not a typeset structure. It exists so that the entry and
// exit atoms, ring layout and rotation can be checked at a glance before
// the chemfig code goes into a document. Bonds are plain strokes with
// offsets for double and triple bonds and wedges for stereo bonds;
// heteroatoms are labeled with a fixed bitmap font so no font files are
// needed at runtime.
//
//	png, err := preview.RenderPNG(g, preview.Options{Rotate: 30})
package preview
