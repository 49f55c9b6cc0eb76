package atom

// URI is the atom extension URI.
const URI = "http://lv2plug.in/ns/ext/atom"

// Class URIs
const (
	AtomURI     = "http://lv2plug.in/ns/ext/atom#Atom"
	AtomPortURI = "http://lv2plug.in/ns/ext/atom#AtomPort"
	BlankURI    = "http://lv2plug.in/ns/ext/atom#Blank"
	BoolURI     = "http://lv2plug.in/ns/ext/atom#Bool"
	ChunkURI    = "http://lv2plug.in/ns/ext/atom#Chunk"
	DoubleURI   = "http://lv2plug.in/ns/ext/atom#Double"
	EventURI    = "http://lv2plug.in/ns/ext/atom#Event"
	FloatURI    = "http://lv2plug.in/ns/ext/atom#Float"
	IntURI      = "http://lv2plug.in/ns/ext/atom#Int"
	LiteralURI  = "http://lv2plug.in/ns/ext/atom#Literal"
	LongURI     = "http://lv2plug.in/ns/ext/atom#Long"
	NumberURI   = "http://lv2plug.in/ns/ext/atom#Number"
	ObjectURI   = "http://lv2plug.in/ns/ext/atom#Object"
	PathURI     = "http://lv2plug.in/ns/ext/atom#Path"
	PropertyURI = "http://lv2plug.in/ns/ext/atom#Property"
	ResourceURI = "http://lv2plug.in/ns/ext/atom#Resource"
	SequenceURI = "http://lv2plug.in/ns/ext/atom#Sequence"
	SoundURI    = "http://lv2plug.in/ns/ext/atom#Sound"
	StringURI   = "http://lv2plug.in/ns/ext/atom#String"
	TupleURI    = "http://lv2plug.in/ns/ext/atom#Tuple"
	URIURI      = "http://lv2plug.in/ns/ext/atom#URI"
	URIDURI     = "http://lv2plug.in/ns/ext/atom#URID"
	VectorURI   = "http://lv2plug.in/ns/ext/atom#Vector"
)

// Property URIs
const (
	BeatTimeURI   = "http://lv2plug.in/ns/ext/atom#beatTime"
	BufferTypeURI = "http://lv2plug.in/ns/ext/atom#bufferType"
	ChildTypeURI  = "http://lv2plug.in/ns/ext/atom#childType"
	FrameTimeURI  = "http://lv2plug.in/ns/ext/atom#frameTime"
	SupportsURI   = "http://lv2plug.in/ns/ext/atom#supports"
	TimeUnitURI   = "http://lv2plug.in/ns/ext/atom#timeUnit"
)

// Instance URIs
const (
	AtomTransferURI  = "http://lv2plug.in/ns/ext/atom#atomTransfer"
	EventTransferURI = "http://lv2plug.in/ns/ext/atom#eventTransfer"
)
