package midi

// URI is the MIDI extension URI.
const URI = "http://lv2plug.in/ns/ext/midi"

// Class URIs
const (
	ActiveSenseURI     = "http://lv2plug.in/ns/ext/midi#ActiveSense"
	AftertouchURI      = "http://lv2plug.in/ns/ext/midi#Aftertouch"
	BenderURI          = "http://lv2plug.in/ns/ext/midi#Bender"
	ChannelPressureURI = "http://lv2plug.in/ns/ext/midi#ChannelPressure"
	ChunkURI           = "http://lv2plug.in/ns/ext/midi#Chunk"
	ClockURI           = "http://lv2plug.in/ns/ext/midi#Clock"
	ContinueURI        = "http://lv2plug.in/ns/ext/midi#Continue"
	ControllerURI      = "http://lv2plug.in/ns/ext/midi#Controller"
	MidiEventURI       = "http://lv2plug.in/ns/ext/midi#MidiEvent"
	NoteOffURI         = "http://lv2plug.in/ns/ext/midi#NoteOff"
	NoteOnURI          = "http://lv2plug.in/ns/ext/midi#NoteOn"
	ProgramChangeURI   = "http://lv2plug.in/ns/ext/midi#ProgramChange"
	QuarterFrameURI    = "http://lv2plug.in/ns/ext/midi#QuarterFrame"
	ResetURI           = "http://lv2plug.in/ns/ext/midi#Reset"
	SongPositionURI    = "http://lv2plug.in/ns/ext/midi#SongPosition"
	SongSelectURI      = "http://lv2plug.in/ns/ext/midi#SongSelect"
	StartURI           = "http://lv2plug.in/ns/ext/midi#Start"
	StopURI            = "http://lv2plug.in/ns/ext/midi#Stop"
	SystemCommonURI    = "http://lv2plug.in/ns/ext/midi#SystemCommon"
	SystemExclusiveURI = "http://lv2plug.in/ns/ext/midi#SystemExclusive"
	SystemMessageURI   = "http://lv2plug.in/ns/ext/midi#SystemMessage"
	SystemRealtimeURI  = "http://lv2plug.in/ns/ext/midi#SystemRealtime"
	TickURI            = "http://lv2plug.in/ns/ext/midi#Tick"
	TuneRequestURI     = "http://lv2plug.in/ns/ext/midi#TuneRequest"
	VoiceMessageURI    = "http://lv2plug.in/ns/ext/midi#VoiceMessage"
)

// Property URIs
const (
	BenderValueURI      = "http://lv2plug.in/ns/ext/midi#benderValue"
	BindingURI          = "http://lv2plug.in/ns/ext/midi#binding"
	ByteNumberURI       = "http://lv2plug.in/ns/ext/midi#byteNumber"
	ChannelURI          = "http://lv2plug.in/ns/ext/midi#channel"
	ChunkPropertyURI    = "http://lv2plug.in/ns/ext/midi#chunk"
	ControllerNumberURI = "http://lv2plug.in/ns/ext/midi#controllerNumber"
	ControllerValueURI  = "http://lv2plug.in/ns/ext/midi#controllerValue"
	NoteNumberURI       = "http://lv2plug.in/ns/ext/midi#noteNumber"
	PressureURI         = "http://lv2plug.in/ns/ext/midi#pressure"
	ProgramNumberURI    = "http://lv2plug.in/ns/ext/midi#programNumber"
	PropertyURI         = "http://lv2plug.in/ns/ext/midi#property"
	SongNumberURI       = "http://lv2plug.in/ns/ext/midi#songNumber"
	SongPositionPropURI = "http://lv2plug.in/ns/ext/midi#songPosition"
	StatusURI           = "http://lv2plug.in/ns/ext/midi#status"
	StatusMaskURI       = "http://lv2plug.in/ns/ext/midi#statusMask"
	VelocityURI         = "http://lv2plug.in/ns/ext/midi#velocity"
)
