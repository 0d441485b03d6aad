// Package gallery provides persistence for trip and step images and
// the derived per-trip gallery.
//
// Images carry an explicit order_index per owner; Add always appends.
// The trip gallery is never stored: Gallery derives it on read as the
// union of the trip's own images and every step's images, so deleting
// a step automatically shrinks the gallery without any bookkeeping.
//
// Image files themselves live under a flat media directory managed by
// Media, which names files with a fresh UUID on import so user file
// names can never collide.
package gallery
