package tilegrid

import "github.com/hajimehoshi/ebiten/v2"

// BlendFactor is one side of a source/destination blend equation.
type BlendFactor uint8

const (
	BlendZero             BlendFactor = iota // 0
	BlendOne                                 // 1
	BlendSrcColor                            // source color
	BlendOneMinusSrcColor                    // 1 - source color
	BlendSrcAlpha                            // source alpha
	BlendOneMinusSrcAlpha                    // 1 - source alpha
	BlendDstAlpha                            // destination alpha
	BlendOneMinusDstAlpha                    // 1 - destination alpha
	BlendDstColor                            // destination color
	BlendOneMinusDstColor                    // 1 - destination color
)

var blendFactorNames = [...]string{
	BlendZero:             "Zero",
	BlendOne:              "One",
	BlendSrcColor:         "SrcColor",
	BlendOneMinusSrcColor: "OneMinusSrcColor",
	BlendSrcAlpha:         "SrcAlpha",
	BlendOneMinusSrcAlpha: "OneMinusSrcAlpha",
	BlendDstAlpha:         "DstAlpha",
	BlendOneMinusDstAlpha: "OneMinusDstAlpha",
	BlendDstColor:         "DstColor",
	BlendOneMinusDstColor: "OneMinusDstColor",
}

func (f BlendFactor) String() string {
	if int(f) < len(blendFactorNames) {
		return blendFactorNames[f]
	}
	return "Unknown"
}

// ebitenFactor maps the factor to its Ebitengine equivalent. Unknown values
// map to BlendFactorOne.
func (f BlendFactor) ebitenFactor() ebiten.BlendFactor {
	switch f {
	case BlendZero:
		return ebiten.BlendFactorZero
	case BlendOne:
		return ebiten.BlendFactorOne
	case BlendSrcColor:
		return ebiten.BlendFactorSourceColor
	case BlendOneMinusSrcColor:
		return ebiten.BlendFactorOneMinusSourceColor
	case BlendSrcAlpha:
		return ebiten.BlendFactorSourceAlpha
	case BlendOneMinusSrcAlpha:
		return ebiten.BlendFactorOneMinusSourceAlpha
	case BlendDstAlpha:
		return ebiten.BlendFactorDestinationAlpha
	case BlendOneMinusDstAlpha:
		return ebiten.BlendFactorOneMinusDestinationAlpha
	case BlendDstColor:
		return ebiten.BlendFactorDestinationColor
	case BlendOneMinusDstColor:
		return ebiten.BlendFactorOneMinusDestinationColor
	default:
		return ebiten.BlendFactorOne
	}
}

// BlendFunc is a source/destination blend-factor pair.
type BlendFunc struct {
	Src, Dst BlendFactor
}

var (
	// DefaultBlendFunc is the premultiplied-alpha pair every atlas node starts with.
	DefaultBlendFunc = BlendFunc{BlendOne, BlendOneMinusSrcAlpha}

	// AlphaBlendFunc is the straight-alpha pair used for textures without
	// premultiplied alpha.
	AlphaBlendFunc = BlendFunc{BlendSrcAlpha, BlendOneMinusSrcAlpha}

	// AdditiveBlendFunc adds the source on top of the destination.
	AdditiveBlendFunc = BlendFunc{BlendSrcAlpha, BlendOne}
)

// EbitenBlend returns the ebiten.Blend for this pair. The same factors are
// used for the color and alpha channels with an additive operation.
func (b BlendFunc) EbitenBlend() ebiten.Blend {
	src := b.Src.ebitenFactor()
	dst := b.Dst.ebitenFactor()
	return ebiten.Blend{
		BlendFactorSourceRGB:        src,
		BlendFactorSourceAlpha:      src,
		BlendFactorDestinationRGB:   dst,
		BlendFactorDestinationAlpha: dst,
		BlendOperationRGB:           ebiten.BlendOperationAdd,
		BlendOperationAlpha:         ebiten.BlendOperationAdd,
	}
}

func (b BlendFunc) String() string {
	return "{" + b.Src.String() + ", " + b.Dst.String() + "}"
}
