package tilegrid

// Backend names the rendering strategy an atlas node draws with.
type Backend uint8

const (
	BackendAuto     Backend = iota // use DefaultBackend()
	BackendGPU                     // batched quads through a shader program
	BackendSoftware                // color baked into a tinted bitmap on the CPU
)

func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendGPU:
		return "gpu"
	case BackendSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// resolve maps BackendAuto to the compile-time default.
func (b Backend) resolve() Backend {
	if b == BackendAuto {
		return DefaultBackend()
	}
	return b
}

// renderBackend is the per-node rendering strategy. A node gets exactly one,
// picked in its constructor, and keeps it for its whole life.
type renderBackend interface {
	kind() Backend
	initWithTexture(a *AtlasNode, tex *Texture, itemW, itemH, itemsToRender int) bool
	draw(a *AtlasNode, ctx RenderContext)
	setColor(a *AtlasNode, c RGB)
	setOpacity(a *AtlasNode, o uint8)
	texture(a *AtlasNode) *Texture
	setTexture(a *AtlasNode, t *Texture)
	calculateMaxItems(a *AtlasNode)
	// displayedChanged runs after the node's displayed color or opacity was
	// recomputed, including changes cascaded from a parent.
	displayedChanged(a *AtlasNode)
	release(a *AtlasNode)
}

func newRenderBackend(b Backend, opts Options, textures *TextureCache) renderBackend {
	if b.resolve() == BackendSoftware {
		return &softwareBackend{tinter: newTinter(opts.Tint, textures)}
	}
	return &gpuBackend{uniformColor: InvalidUniform}
}
