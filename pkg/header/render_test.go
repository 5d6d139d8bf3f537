// Test Type: Unit Test
// Description: Tests for header rendering - placeholder substitution and comment wrapping

package header_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/headerguard/headerguard/pkg/errors"
	"github.com/headerguard/headerguard/pkg/header"
	"github.com/headerguard/headerguard/pkg/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRendererSubstitution(t *testing.T) {
	reg := language.NewRegistry()

	t.Run("substitutes_all_placeholders", func(t *testing.T) {
		r, err := header.NewRenderer(
			"Copyright {inceptionYear} {copyrightOwner}",
			map[string]string{"copyrightOwner": "Acme", "inceptionYear": "2022"},
			reg,
		)
		require.NoError(t, err)

		rendered, err := r.ForFile("Cargo.toml")
		require.NoError(t, err)
		assert.Equal(t, "# Copyright 2022 Acme\n", rendered)
	})

	t.Run("missing_property_fails", func(t *testing.T) {
		_, err := header.NewRenderer(
			"Copyright {inceptionYear} {copyrightOwner}",
			map[string]string{"copyrightOwner": "Acme"},
			reg,
		)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrMissingProperty))
	})

	t.Run("year_has_builtin_default", func(t *testing.T) {
		r, err := header.NewRenderer("Copyright {year} Acme", nil, reg)
		require.NoError(t, err)

		rendered, err := r.ForFile("main.go")
		require.NoError(t, err)
		assert.Equal(t, "// Copyright "+strconv.Itoa(time.Now().Year())+" Acme\n", rendered)
	})

	t.Run("bound_year_wins_over_default", func(t *testing.T) {
		r, err := header.NewRenderer("Copyright {year} Acme", map[string]string{"year": "1999"}, reg)
		require.NoError(t, err)

		rendered, err := r.ForFile("main.go")
		require.NoError(t, err)
		assert.Equal(t, "// Copyright 1999 Acme\n", rendered)
	})

	t.Run("unsupported_language", func(t *testing.T) {
		r, err := header.NewRenderer("Copyright 2022 Acme", nil, reg)
		require.NoError(t, err)

		_, err = r.ForFile("firmware.bin")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedLang))
	})
}

func TestRendererIsDeterministic(t *testing.T) {
	reg := language.NewRegistry()
	r, err := header.NewRenderer(
		"Copyright {inceptionYear} {copyrightOwner}\n\nLicensed under Apache-2.0.",
		map[string]string{"copyrightOwner": "Datafuse Labs", "inceptionYear": "2022"},
		reg,
	)
	require.NoError(t, err)

	first, err := r.ForFile("src/lib.rs")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.ForFile("src/lib.rs")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		style language.Style
		want  string
	}{
		{
			name:  "line_prefix",
			text:  "Copyright 2022 Acme\nAll rights reserved.",
			style: language.Style{LinePrefix: "//"},
			want:  "// Copyright 2022 Acme\n// All rights reserved.\n",
		},
		{
			name:  "line_prefix_keeps_empty_lines_trimmed",
			text:  "Copyright 2022 Acme\n\nSecond paragraph.",
			style: language.Style{LinePrefix: "#"},
			want:  "# Copyright 2022 Acme\n#\n# Second paragraph.\n",
		},
		{
			name:  "block_with_line_prefix",
			text:  "Copyright 2022 Acme",
			style: language.Style{BlockStart: "/*", LinePrefix: " *", BlockEnd: " */"},
			want:  "/*\n * Copyright 2022 Acme\n */\n",
		},
		{
			name:  "bare_block",
			text:  "Copyright 2022 Acme",
			style: language.Style{BlockStart: "<!--", BlockEnd: "-->"},
			want:  "<!--\nCopyright 2022 Acme\n-->\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, header.Wrap(tt.text, tt.style))
		})
	}
}
