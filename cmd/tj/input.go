package main

import (
	"fmt"
	"io"
	"os"
)

type input struct {
	name string
	data []byte
}

// readInputs reads every file in files, or stdin when there are none.
// "-" also names stdin.
func readInputs(files []string) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	res := make([]input, 0, len(files))
	for _, file := range files {
		var (
			d   []byte
			err error
		)
		if file == "-" {
			d, err = io.ReadAll(os.Stdin)
			file = "<stdin>"
		} else {
			d, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", file, err)
		}
		res = append(res, input{name: file, data: d})
	}
	return res, nil
}
