// Package types contains small shared types of the avkitchen project.
package types

import (
	"fmt"

	"github.com/asticode/go-astiav"
)

// MediaKind selects which stream of an input container a recipe targets.
type MediaKind int

const (
	MediaKindUndefined MediaKind = iota
	MediaKindAudio
	MediaKindVideo
	MediaKindSubtitle
	EndOfMediaKind
)

func (k MediaKind) String() string {
	switch k {
	case MediaKindAudio:
		return "audio"
	case MediaKindVideo:
		return "video"
	case MediaKindSubtitle:
		return "subtitle"
	default:
		return fmt.Sprintf("unknown_media_kind_%d", int(k))
	}
}

func (k MediaKind) MediaType() astiav.MediaType {
	switch k {
	case MediaKindAudio:
		return astiav.MediaTypeAudio
	case MediaKindVideo:
		return astiav.MediaTypeVideo
	case MediaKindSubtitle:
		return astiav.MediaTypeSubtitle
	default:
		return astiav.MediaTypeUnknown
	}
}

func MediaKindFromMediaType(mt astiav.MediaType) MediaKind {
	switch mt {
	case astiav.MediaTypeAudio:
		return MediaKindAudio
	case astiav.MediaTypeVideo:
		return MediaKindVideo
	case astiav.MediaTypeSubtitle:
		return MediaKindSubtitle
	default:
		return MediaKindUndefined
	}
}

// MediaKindFromString parses values like "audio"/"video"/"subtitle".
func MediaKindFromString(s string) (MediaKind, error) {
	for k := MediaKindUndefined + 1; k < EndOfMediaKind; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return MediaKindUndefined, fmt.Errorf("unknown media kind '%s'", s)
}
