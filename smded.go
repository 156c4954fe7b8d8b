/*
Package smded renders SNES tileset graphics from SMART project
exports.

It decodes 4bpp planar tile graphics, resolves how common (CRE) and
area-specific (SCE) tilesets overlay each other in shared video
memory, and composites tile and block sheets into pixel buffers,
memoizing results between draw cycles.
*/
package smded
