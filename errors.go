package tilegrid

import "errors"

var (
	// ErrEmptyTileFile is returned by the constructor helpers when the tile
	// file path is empty. InitWithTileFile panics with the same message.
	ErrEmptyTileFile = errors.New("tilegrid: tile file must not be empty")

	// ErrNilTexture reports an operation that needs a texture but got nil.
	ErrNilTexture = errors.New("tilegrid: texture is nil")

	// ErrInitFailed wraps a false result from InitWithTexture/InitWithTileFile.
	ErrInitFailed = errors.New("tilegrid: atlas node initialization failed")

	// ErrUnknownShader is returned by ShaderCache.ProgramForKey for keys that
	// were never registered.
	ErrUnknownShader = errors.New("tilegrid: unknown shader key")

	// ErrQuadIndex is returned when a quad index falls outside the atlas capacity.
	ErrQuadIndex = errors.New("tilegrid: quad index out of range")

	// ErrInvalidTileSheet is returned when a tile sheet descriptor fails validation.
	ErrInvalidTileSheet = errors.New("tilegrid: invalid tile sheet")
)
