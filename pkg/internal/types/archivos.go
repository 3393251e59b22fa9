package types

import "io"

// ArchivoSubida is one file to attach, decoupled from multipart so services
// stay testable without HTTP. Open must return a fresh reader per call.
type ArchivoSubida struct {
	Nombre      string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}
