//go:build !unix

package terminal

import "errors"

type input struct {
	chunks chan []byte
}

func newInput(int) (*input, error) {
	return nil, errors.New("raw terminal input is not supported on this platform")
}

func (in *input) Close() error {
	return nil
}
