// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a reusable set of encoder settings, usually kept in YAML:
//
//	compression_level: 8
//	bit_depth: 24
//	padding: 4096
//	verify: false
//	tags:
//	  - key: ARTIST
//	    value: Someone
//
// Unset fields leave the Builder unchanged.
type Profile struct {
	CompressionLevel *int      `yaml:"compression_level"`
	BitDepth         *int      `yaml:"bit_depth"`
	Padding          *uint32   `yaml:"padding"`
	Verify           *bool     `yaml:"verify"`
	Tags             []Comment `yaml:"tags"`
}

// ParseProfile decodes a YAML profile.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, kindError(ErrInvalidProfile, err)
	}

	if p.BitDepth != nil && !BitDepth(*p.BitDepth).Valid() {
		return Profile{}, fmt.Errorf("%w: %w: %d", ErrInvalidProfile, ErrInvalidBitDepth, *p.BitDepth)
	}

	return p, nil
}

// LoadProfile reads and decodes the YAML profile at path.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("%w", err)
	}

	return ParseProfile(data)
}

// Profile applies the fields set in p. Tags are appended after the ones
// already configured.
func (b Builder[S]) Profile(p Profile) Builder[S] {
	if p.CompressionLevel != nil {
		b = b.CompressionLevel(*p.CompressionLevel)
	}

	if p.BitDepth != nil {
		b = b.BitDepth(BitDepth(*p.BitDepth))
	}

	if p.Padding != nil {
		b = b.Padding(*p.Padding)
	}

	if p.Verify != nil {
		b = b.Verify(*p.Verify)
	}

	for _, t := range p.Tags {
		b = b.Comment(t.Key, t.Value)
	}

	return b
}
