package dastcom5

import (
	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
)

// BodyKind selects one of the two binary files.
type BodyKind int

const (
	Asteroid BodyKind = iota
	Comet
)

func (k BodyKind) String() string {
	if k == Comet {
		return "comet"
	}
	return "asteroid"
}

func (k BodyKind) fileName() string {
	if k == Comet {
		return consts.CometFileName
	}
	return consts.AsteroidFileName
}

// Stride is the fixed byte length of one record of the kind.
func (k BodyKind) Stride() int64 {
	if k == Comet {
		return schema.CometStride
	}
	return schema.AsteroidStride
}

func (k BodyKind) recordSchema() *schema.Schema {
	if k == Comet {
		return schema.CometSchema
	}
	return schema.AsteroidSchema
}

func (k BodyKind) headerSchema() *schema.Schema {
	if k == Comet {
		return schema.CometHeaderSchema
	}
	return schema.AsteroidHeaderSchema
}
