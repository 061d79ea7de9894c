// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-press/inkwell/pkg/slug"
)

func TestFrom(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain title", input: "The Quiet Harbour", want: "the-quiet-harbour"},
		{name: "accents stripped", input: "Café Crème à Paris", want: "cafe-creme-a-paris"},
		{name: "punctuation collapsed", input: "Salt & Water: Letters!", want: "salt-water-letters"},
		{name: "digits preserved", input: "1984, Volume 2", want: "1984-volume-2"},
		{name: "surrounding noise trimmed", input: "  --Fern Hollow--  ", want: "fern-hollow"},
		{name: "empty input", input: "", want: ""},
		{name: "only symbols", input: "!!!", want: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, slug.From(testCase.input))
		})
	}
}
