package vhal

// Window area flags.
const (
	WindowFrontWindshield int32 = 0x00001
	WindowRearWindshield  int32 = 0x00002
	WindowRow1Left        int32 = 0x00010
	WindowRow1Right       int32 = 0x00040
	WindowRow2Left        int32 = 0x00100
	WindowRow2Right       int32 = 0x00400
	WindowRow3Left        int32 = 0x01000
	WindowRow3Right       int32 = 0x04000
	WindowRoofTop1        int32 = 0x10000
	WindowRoofTop2        int32 = 0x20000
)

// Seat area flags.
const (
	SeatRow1Left   int32 = 0x001
	SeatRow1Center int32 = 0x002
	SeatRow1Right  int32 = 0x004
	SeatRow2Left   int32 = 0x010
	SeatRow2Center int32 = 0x020
	SeatRow2Right  int32 = 0x040
	SeatRow3Left   int32 = 0x100
	SeatRow3Center int32 = 0x200
	SeatRow3Right  int32 = 0x400
)

// Door area flags.
const (
	DoorRow1Left  int32 = 0x00000001
	DoorRow1Right int32 = 0x00000004
	DoorRow2Left  int32 = 0x00000010
	DoorRow2Right int32 = 0x00000040
	DoorRow3Left  int32 = 0x00000100
	DoorRow3Right int32 = 0x00000400
	DoorHood      int32 = 0x10000000
	DoorRear      int32 = 0x20000000
)

// Mirror area flags.
const (
	MirrorDriverLeft   int32 = 0x1
	MirrorDriverRight  int32 = 0x2
	MirrorDriverCenter int32 = 0x4
)

// Wheel area flags.
const (
	WheelLeftFront  int32 = 0x1
	WheelRightFront int32 = 0x2
	WheelRightRear  int32 = 0x4
	WheelLeftRear   int32 = 0x8
)

// GlobalAreaID is the only valid area id for global properties.
const GlobalAreaID int32 = 0
