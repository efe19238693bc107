// Package sim implements the execution engine: the component that ties the
// decoder, register file, and memory router together into a step function.
package sim

import (
	"fmt"

	"github.com/rv32iss/rv32iss/config"
	"github.com/rv32iss/rv32iss/decode"
	"github.com/rv32iss/rv32iss/memory"
	"github.com/rv32iss/rv32iss/register"
	"github.com/rv32iss/rv32iss/trace"
)

// Simulator is the top-level machine state: the program counter, the
// register file, and the memory router. It has no notion of trap or debug
// mode beyond the two reserved vector addresses carried in Config.
type Simulator struct {
	PC uint32

	Regs *register.File
	Mem  *memory.Router

	mtvec uint32
	dvec  uint32
}

// New builds a Simulator from a Config: it constructs the memory regions,
// resolves the register init policy, and sets the initial PC to cfg.Entry.
func New(cfg *config.Config) (*Simulator, error) {
	regions, err := cfg.BuildRegions()
	if err != nil {
		return nil, fmt.Errorf("sim: failed to build memory regions: %w", err)
	}
	regInit, err := cfg.RegInit.Resolve()
	if err != nil {
		return nil, fmt.Errorf("sim: failed to resolve register init policy: %w", err)
	}

	return &Simulator{
		PC:    cfg.Entry,
		Regs:  register.NewFile(regInit),
		Mem:   memory.NewRouter(regions...),
		mtvec: cfg.MTVec,
		dvec:  cfg.DVec,
	}, nil
}

// ProgramByte/Half/Word load a value into memory bypassing write
// protection, for programming an image into place before execution starts.
func (s *Simulator) ProgramByte(addr uint32, b byte) error   { return s.Mem.ProgramByte(addr, b) }
func (s *Simulator) ProgramHalf(addr uint32, h uint16) error { return s.Mem.ProgramHalf(addr, h) }
func (s *Simulator) ProgramWord(addr uint32, w uint32) error { return s.Mem.ProgramWord(addr, w) }

// ReadByte/Half/Word perform a standalone memory read outside of Step,
// returning the observed value wrapped as a trace.Value.
func (s *Simulator) ReadByte(addr uint32) (trace.Value, error) {
	b, err := s.Mem.ReadByte(addr)
	if err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.MemoryOrigin(addr, 1), Word: uint32(b)}, nil
}

func (s *Simulator) ReadHalf(addr uint32) (trace.Value, error) {
	h, err := s.Mem.ReadHalf(addr)
	if err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.MemoryOrigin(addr, 2), Word: uint32(h)}, nil
}

func (s *Simulator) ReadWord(addr uint32) (trace.Value, error) {
	w, err := s.Mem.ReadWord(addr)
	if err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.MemoryOrigin(addr, 4), Word: w}, nil
}

// WriteByte/Half/Word perform a standalone memory write outside of Step.
func (s *Simulator) WriteByte(addr uint32, b byte) (trace.Value, error) {
	if err := s.Mem.WriteByte(addr, b); err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.MemoryOrigin(addr, 1), Word: uint32(b)}, nil
}

func (s *Simulator) WriteHalf(addr uint32, h uint16) (trace.Value, error) {
	if err := s.Mem.WriteHalf(addr, h); err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.MemoryOrigin(addr, 2), Word: uint32(h)}, nil
}

func (s *Simulator) WriteWord(addr uint32, w uint32) (trace.Value, error) {
	if err := s.Mem.WriteWord(addr, w); err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.MemoryOrigin(addr, 4), Word: w}, nil
}

// ReadRegister/WriteRegister perform a standalone register access outside of
// Step.
func (s *Simulator) ReadRegister(reg register.ID) (trace.Value, error) {
	w, err := s.Regs.Read(reg)
	if err != nil {
		return trace.Value{}, err
	}
	return trace.Value{Origin: trace.RegisterOrigin(reg), Word: w}, nil
}

func (s *Simulator) WriteRegister(reg register.ID, w uint32) trace.Value {
	stored := s.Regs.Write(reg, w)
	return trace.Value{Origin: trace.RegisterOrigin(reg), Word: stored}
}

// step carries the bookkeeping a single Step call accumulates: the input
// and committed-value lists, built up as execution touches registers and
// memory, plus the branch target if control flow changes.
type step struct {
	inputs    []trace.Value
	committed []trace.Value
	branched  bool
	newPC     uint32
}

func (st *step) readReg(s *Simulator, reg register.ID) (uint32, error) {
	v, err := s.ReadRegister(reg)
	if err != nil {
		return 0, err
	}
	st.inputs = append(st.inputs, v)
	return v.Word, nil
}

func (st *step) writeReg(s *Simulator, reg register.ID, w uint32) {
	st.committed = append(st.committed, s.WriteRegister(reg, w))
}

func (st *step) readMemByte(s *Simulator, addr uint32) (uint32, error) {
	v, err := s.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	st.inputs = append(st.inputs, v)
	return v.Word, nil
}

func (st *step) readMemHalf(s *Simulator, addr uint32) (uint32, error) {
	v, err := s.ReadHalf(addr)
	if err != nil {
		return 0, err
	}
	st.inputs = append(st.inputs, v)
	return v.Word, nil
}

func (st *step) readMemWord(s *Simulator, addr uint32) (uint32, error) {
	v, err := s.ReadWord(addr)
	if err != nil {
		return 0, err
	}
	st.inputs = append(st.inputs, v)
	return v.Word, nil
}

func (st *step) writeMemByte(s *Simulator, addr uint32, b byte) error {
	v, err := s.WriteByte(addr, b)
	if err != nil {
		return err
	}
	st.committed = append(st.committed, v)
	return nil
}

func (st *step) writeMemHalf(s *Simulator, addr uint32, h uint16) error {
	v, err := s.WriteHalf(addr, h)
	if err != nil {
		return err
	}
	st.committed = append(st.committed, v)
	return nil
}

func (st *step) writeMemWord(s *Simulator, addr uint32, w uint32) error {
	v, err := s.WriteWord(addr, w)
	if err != nil {
		return err
	}
	st.committed = append(st.committed, v)
	return nil
}

func (st *step) branch(target uint32) {
	st.branched = true
	st.newPC = target
}

// Step fetches, decodes, and executes exactly one instruction. On success it
// returns the trace.Record describing what happened and advances PC (to
// PC+4, or to a branch/jump target). On any error — fetch fault, decode
// fault, or a fault during execution — PC is left unchanged and any inputs
// or commits observed so far are discarded; only the error is returned.
func (s *Simulator) Step() (*trace.Record, error) {
	pc := s.PC

	word, err := s.Mem.ReadWord(pc)
	if err != nil {
		return nil, fmt.Errorf("sim: instruction fetch at 0x%08X: %w", pc, err)
	}

	inst, err := decode.Decode(word)
	if err != nil {
		return nil, fmt.Errorf("sim: decode at 0x%08X: %w", pc, err)
	}

	st := &step{}
	if err := s.execute(st, inst, pc); err != nil {
		return nil, err
	}

	nextPC := pc + 4
	if st.branched {
		nextPC = st.newPC
	}
	s.PC = nextPC

	return &trace.Record{
		PC:          pc,
		Instruction: inst,
		Branched:    st.branched,
		NewPC:       st.newPC,
		Inputs:      st.inputs,
		Committed:   st.committed,
	}, nil
}

// execute dispatches on the instruction's Op tag: no per-opcode table, just
// a switch on the Op's category that hands off to the category's own exec*
// function (alu/branch/loadstore/system, each in its own file).
func (s *Simulator) execute(st *step, inst decode.Instruction, pc uint32) error {
	switch {
	case isALU(inst.Op):
		return s.execALU(st, inst)
	case inst.Op.IsBranchOrJump():
		return s.execBranch(st, inst, pc)
	case isLoadStore(inst.Op):
		return s.execLoadStore(st, inst)
	default:
		return s.execSystem(st, inst)
	}
}

func isALU(op decode.Op) bool {
	switch op {
	case decode.OpLUI, decode.OpAUIPC,
		decode.OpADDI, decode.OpSLTI, decode.OpSLTIU, decode.OpXORI, decode.OpORI, decode.OpANDI,
		decode.OpSLLI, decode.OpSRLI, decode.OpSRAI,
		decode.OpADD, decode.OpSUB, decode.OpSLL, decode.OpSLT, decode.OpSLTU,
		decode.OpXOR, decode.OpSRL, decode.OpSRA, decode.OpOR, decode.OpAND:
		return true
	default:
		return false
	}
}

func isLoadStore(op decode.Op) bool {
	switch op {
	case decode.OpLB, decode.OpLH, decode.OpLW, decode.OpLBU, decode.OpLHU,
		decode.OpSB, decode.OpSH, decode.OpSW:
		return true
	default:
		return false
	}
}
