package generator

import (
	"fmt"
	"os"
)

// Verify decodes the generated file and checks that its literals match
// the bytes of input, in order.
func Verify(input, generated string) (*Artifact, error) {
	want, err := os.ReadFile(input)
	if err != nil {
		return nil, newError(InputUnavailable, "read", input, err)
	}

	a, err := DecodeFile(generated)
	if err != nil {
		return nil, err
	}

	n := min(len(want), len(a.Data))
	for i := 0; i < n; i++ {
		if want[i] != a.Data[i] {
			return a, fmt.Errorf("%s: content mismatch at offset %d: input has %d, generated has %d", generated, i, want[i], a.Data[i])
		}
	}
	if len(want) != len(a.Data) {
		return a, fmt.Errorf("%s: length mismatch: input has %d bytes, generated has %d", generated, len(want), len(a.Data))
	}
	return a, nil
}
