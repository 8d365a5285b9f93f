package cpu

// testMemory is a flat 64KB address space used to drive the CPU in
// isolation from the real bus, the way a unit test for an addressing
// mode or flag rule wants to control memory directly.
type testMemory struct {
	data [0x10000]uint8
}

func newTestMemory() *testMemory { return &testMemory{} }

func (m *testMemory) Read(addr uint16) uint8         { return m.data[addr] }
func (m *testMemory) Write(addr uint16, value uint8) { m.data[addr] = value }

func (m *testMemory) load(addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		m.data[int(addr)+i] = b
	}
}

func newTestCPU(resetPC uint16) (*CPU, *testMemory) {
	mem := newTestMemory()
	mem.data[resetVector] = uint8(resetPC)
	mem.data[resetVector+1] = uint8(resetPC >> 8)
	return New(mem), mem
}
