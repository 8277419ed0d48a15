//go:build !opencl

package main

import "errors"

func newOpenCLBackend(width, height, workers int) (fieldBackend, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}
