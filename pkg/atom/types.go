package atom

import (
	"github.com/justyntemme/lv2go/pkg/urid"
)

// Kind is the closed set of body layouts this package understands.
type Kind int

// Each Kind names the atom class with the same suffix. KindUnknown is
// any type URID outside the set.
const (
	KindUnknown Kind = iota
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBool
	KindURID
	KindString
	KindLiteral
	KindURI
	KindPath
	KindChunk
	KindTuple
	KindVector
	KindObject
	KindProperty
	KindSequence
)

// String returns the class name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindLong:
		return "Long"
	case KindFloat:
		return "Float"
	case KindDouble:
		return "Double"
	case KindBool:
		return "Bool"
	case KindURID:
		return "URID"
	case KindString:
		return "String"
	case KindLiteral:
		return "Literal"
	case KindURI:
		return "URI"
	case KindPath:
		return "Path"
	case KindChunk:
		return "Chunk"
	case KindTuple:
		return "Tuple"
	case KindVector:
		return "Vector"
	case KindObject:
		return "Object"
	case KindProperty:
		return "Property"
	case KindSequence:
		return "Sequence"
	default:
		return "Unknown"
	}
}

// IsScalar reports whether the body is a single fixed-size number.
func (k Kind) IsScalar() bool {
	switch k {
	case KindInt, KindLong, KindFloat, KindDouble, KindBool, KindURID:
		return true
	}
	return false
}

// IsText reports whether the body is NUL-terminated text.
func (k Kind) IsText() bool {
	switch k {
	case KindString, KindLiteral, KindURI, KindPath:
		return true
	}
	return false
}

// Types holds the URIDs of every atom class, resolved once at setup.
type Types struct {
	Int      urid.URID
	Long     urid.URID
	Float    urid.URID
	Double   urid.URID
	Bool     urid.URID
	URID     urid.URID
	String   urid.URID
	Literal  urid.URID
	URI      urid.URID
	Path     urid.URID
	Chunk    urid.URID
	Tuple    urid.URID
	Vector   urid.URID
	Object   urid.URID
	Property urid.URID
	Sequence urid.URID

	FrameTime urid.URID
	BeatTime  urid.URID
}

// NewTypes resolves all atom classes through m.
func NewTypes(m urid.Mapper) (Types, error) {
	ids, err := urid.MapAll(m,
		IntURI, LongURI, FloatURI, DoubleURI, BoolURI, URIDURI,
		StringURI, LiteralURI, URIURI, PathURI, ChunkURI,
		TupleURI, VectorURI, ObjectURI, PropertyURI, SequenceURI,
		FrameTimeURI, BeatTimeURI,
	)
	if err != nil {
		return Types{}, err
	}
	return Types{
		Int: ids[0], Long: ids[1], Float: ids[2], Double: ids[3], Bool: ids[4], URID: ids[5],
		String: ids[6], Literal: ids[7], URI: ids[8], Path: ids[9], Chunk: ids[10],
		Tuple: ids[11], Vector: ids[12], Object: ids[13], Property: ids[14], Sequence: ids[15],
		FrameTime: ids[16], BeatTime: ids[17],
	}, nil
}

// Kind maps a type URID to its layout.
func (t *Types) Kind(id urid.URID) Kind {
	if id == 0 {
		return KindUnknown
	}
	switch id {
	case t.Int:
		return KindInt
	case t.Long:
		return KindLong
	case t.Float:
		return KindFloat
	case t.Double:
		return KindDouble
	case t.Bool:
		return KindBool
	case t.URID:
		return KindURID
	case t.String:
		return KindString
	case t.Literal:
		return KindLiteral
	case t.URI:
		return KindURI
	case t.Path:
		return KindPath
	case t.Chunk:
		return KindChunk
	case t.Tuple:
		return KindTuple
	case t.Vector:
		return KindVector
	case t.Object:
		return KindObject
	case t.Property:
		return KindProperty
	case t.Sequence:
		return KindSequence
	}
	return KindUnknown
}

// ID returns the URID of a kind, or zero for KindUnknown.
func (t *Types) ID(k Kind) urid.URID {
	switch k {
	case KindInt:
		return t.Int
	case KindLong:
		return t.Long
	case KindFloat:
		return t.Float
	case KindDouble:
		return t.Double
	case KindBool:
		return t.Bool
	case KindURID:
		return t.URID
	case KindString:
		return t.String
	case KindLiteral:
		return t.Literal
	case KindURI:
		return t.URI
	case KindPath:
		return t.Path
	case KindChunk:
		return t.Chunk
	case KindTuple:
		return t.Tuple
	case KindVector:
		return t.Vector
	case KindObject:
		return t.Object
	case KindProperty:
		return t.Property
	case KindSequence:
		return t.Sequence
	}
	return 0
}
