package main

import "errors"

var (
	errNotFinite         = errors.New("coordinates are not finite")
	errUnsupportedFormat = errors.New("unsupported bomb file format")
	errMissingListenAddr = errors.New("listen address cannot be empty")
)
