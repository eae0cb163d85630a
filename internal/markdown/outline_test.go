package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const page = `# Guide

Intro text.

## Install

### From source

#### Deep detail

## Configure *the* ` + "`site`" + `

` + "```" + `
## not a heading
` + "```" + `
`

func TestOutline(t *testing.T) {
	require.Equal(t, []Heading{
		{Level: 2, Text: "Install", ID: "install"},
		{Level: 3, Text: "From source", ID: "from-source"},
		{Level: 2, Text: "Configure the site", ID: "configure-the-site"},
	}, Outline([]byte(page), 2, 3))

	require.Len(t, Outline([]byte(page), 2, 6), 4)
	require.Len(t, Outline([]byte(page), 2, 2), 2)
}

func TestTitle(t *testing.T) {
	require.Equal(t, "Guide", Title([]byte(page)))
	require.Equal(t, "", Title([]byte("## Only level two\n")))
	require.Equal(t, "Setext", Title([]byte("Setext\n======\n")))
}
