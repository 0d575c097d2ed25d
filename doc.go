// Package tilegrid draws grids of equally sized tiles from one shared texture
// on [Ebitengine].
//
// The central type is [AtlasNode]: a scene graph node that renders
// QuadsToDraw tiles ("items") of ItemWidth x ItemHeight cut from a single
// texture. [CharMap] builds on it to render strings whose characters index
// the tile grid, the usual way to draw score counters and bitmap digits.
//
// # Backends
//
// Every atlas node picks a rendering backend once, in its constructor:
//
//   - [BackendGPU] keeps a [TextureAtlas] of quads and draws them in one
//     batched call through a Kage program that multiplies each texel by the
//     node's color uniform.
//   - [BackendSoftware] bakes the node's color into a tinted copy of the
//     texture on the CPU, either with a multiply-blend composite or with
//     per-channel lookup tables (see [TintMode]).
//
// [BackendAuto] resolves to [DefaultBackend], which is [BackendGPU] unless
// the module is built with the tilegrid_software tag.
//
// # Drawing
//
// Drawing always goes through an explicit [RenderContext]. [Scene.Draw]
// wraps the screen in an [EbitenContext]; tests and custom pipelines can
// pass their own implementation to [Scene.Render] or [AtlasNode.Draw].
//
//	type Game struct{ scene *tilegrid.Scene }
//
//	func (g *Game) Update() error              { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)       { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Color and opacity
//
// Textures are premultiplied by default. While opacity-modifies-RGB is set,
// fading a node scales its RGB along with alpha, and [AtlasNode.Color]
// keeps returning the color last passed to [AtlasNode.SetColor]. Textures
// created with [TextureOptions.StraightAlpha] keep un-premultiplied pixels,
// switch the node to [AlphaBlendFunc] and, on the GPU backend, turn the flag
// off and draw with [ShaderPositionTextureUColorStraight].
//
// # Textures
//
// [Texture] values are reference counted and shared: the [TextureCache],
// texture atlases and nodes each hold a reference, and none of them owns
// the texture exclusively. Replacing a node's texture releases it rather
// than destroying it.
//
// Tile sheet descriptors can be loaded from JSON or TOML with
// [LoadTileSheet] and [LoadTileSheetTOML].
//
// [Ebitengine]: https://ebitengine.org
package tilegrid
