package protocols

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vybium/vybium-fib-stark/internal/vybium-fib-stark/core"
)

// Opening is a single authenticated evaluation: the claimed residue plus
// its Merkle authentication path.
type Opening struct {
	Value uint32
	Path  core.AuthPath
}

// FRILayerOpening is a matched pair of openings at a FRI layer: the
// evaluation at the query index and at its domain negation, the two
// values a fold-consistency check needs.
type FRILayerOpening struct {
	CPX  Opening
	CPNX Opening
}

// Proof is the flat, ordered transcript of a Fibonacci-square STARK proof:
// commitments first (in the order the prover made them), then the
// decommitments (opened values and their authentication paths) the
// verifier needs to recheck every commitment.
type Proof struct {
	InitState  [32]byte
	FinalState [32]byte

	FEvalMerkleRoot    core.Digest
	Alpha0             uint32
	Alpha1             uint32
	Alpha2             uint32
	CPEvalMerkleRoot   core.Digest
	Betas              [NumFRILayers]uint32
	FRIEvalMerkleRoots [NumFRILayers]core.Digest
	FRIFreeTerm        uint32

	TestPoint uint32
	FX        Opening
	FGX       Opening
	FGGX      Opening
	CP0X      Opening

	FRILayers [NumFRILayers]FRILayerOpening
}

// Size returns the proof's serialized size in bytes, the figure reported
// as the external-facing "proof size" metric.
func (p *Proof) Size() int {
	buf, err := p.Serialize()
	if err != nil {
		return 0
	}
	return len(buf)
}

// Serialize encodes the proof using a fixed little-endian layout: u32
// fields as 4 bytes LE, digests as a 4-byte length prefix (always 32)
// followed by the raw bytes, and authentication paths as an 8-byte count
// prefix followed by length-prefixed digests.
func (p *Proof) Serialize() ([]byte, error) {
	var buf bytes.Buffer

	buf.Write(p.InitState[:])
	buf.Write(p.FinalState[:])

	writeDigest(&buf, p.FEvalMerkleRoot)
	writeU32(&buf, p.Alpha0)
	writeU32(&buf, p.Alpha1)
	writeU32(&buf, p.Alpha2)
	writeDigest(&buf, p.CPEvalMerkleRoot)
	for _, b := range p.Betas {
		writeU32(&buf, b)
	}
	for _, r := range p.FRIEvalMerkleRoots {
		writeDigest(&buf, r)
	}
	writeU32(&buf, p.FRIFreeTerm)

	writeU32(&buf, p.TestPoint)
	writeOpening(&buf, p.FX)
	writeOpening(&buf, p.FGX)
	writeOpening(&buf, p.FGGX)
	writeOpening(&buf, p.CP0X)

	for _, layer := range p.FRILayers {
		writeOpening(&buf, layer.CPX)
		writeOpening(&buf, layer.CPNX)
	}

	return buf.Bytes(), nil
}

// Deserialize decodes a proof previously produced by Serialize.
func Deserialize(data []byte) (*Proof, error) {
	r := bytes.NewReader(data)
	p := &Proof{}

	if _, err := readExactly(r, p.InitState[:]); err != nil {
		return nil, fmt.Errorf("protocols: reading init state: %w", err)
	}
	if _, err := readExactly(r, p.FinalState[:]); err != nil {
		return nil, fmt.Errorf("protocols: reading final state: %w", err)
	}

	var err error
	if p.FEvalMerkleRoot, err = readDigest(r); err != nil {
		return nil, fmt.Errorf("protocols: reading f_eval merkle root: %w", err)
	}
	if p.Alpha0, err = readU32(r); err != nil {
		return nil, err
	}
	if p.Alpha1, err = readU32(r); err != nil {
		return nil, err
	}
	if p.Alpha2, err = readU32(r); err != nil {
		return nil, err
	}
	if p.CPEvalMerkleRoot, err = readDigest(r); err != nil {
		return nil, fmt.Errorf("protocols: reading cp_eval merkle root: %w", err)
	}
	for i := range p.Betas {
		if p.Betas[i], err = readU32(r); err != nil {
			return nil, fmt.Errorf("protocols: reading beta %d: %w", i, err)
		}
	}
	for i := range p.FRIEvalMerkleRoots {
		if p.FRIEvalMerkleRoots[i], err = readDigest(r); err != nil {
			return nil, fmt.Errorf("protocols: reading fri merkle root %d: %w", i, err)
		}
	}
	if p.FRIFreeTerm, err = readU32(r); err != nil {
		return nil, err
	}

	if p.TestPoint, err = readU32(r); err != nil {
		return nil, err
	}
	for _, dst := range []*Opening{&p.FX, &p.FGX, &p.FGGX, &p.CP0X} {
		if *dst, err = readOpening(r); err != nil {
			return nil, fmt.Errorf("protocols: reading opening: %w", err)
		}
	}

	for i := range p.FRILayers {
		cpx, err := readOpening(r)
		if err != nil {
			return nil, fmt.Errorf("protocols: reading fri layer %d cp(x): %w", i, err)
		}
		cpnx, err := readOpening(r)
		if err != nil {
			return nil, fmt.Errorf("protocols: reading fri layer %d cp(-x): %w", i, err)
		}
		p.FRILayers[i] = FRILayerOpening{CPX: cpx, CPNX: cpnx}
	}

	return p, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeDigest(buf *bytes.Buffer, d core.Digest) {
	writeU32(buf, uint32(len(d)))
	buf.Write(d[:])
}

func writePath(buf *bytes.Buffer, path core.AuthPath) {
	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(path)))
	buf.Write(count[:])
	for _, d := range path {
		writeDigest(buf, d)
	}
}

func writeOpening(buf *bytes.Buffer, o Opening) {
	writeU32(buf, o.Value)
	writePath(buf, o.Path)
}

func readExactly(r *bytes.Reader, dst []byte) (int, error) {
	return io.ReadFull(r, dst)
}

func readU32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := readExactly(r, tmp[:]); err != nil {
		return 0, fmt.Errorf("protocols: reading u32: %w", err)
	}
	return binary.LittleEndian.Uint32(tmp[:]), nil
}

func readDigest(r *bytes.Reader) (core.Digest, error) {
	var d core.Digest
	length, err := readU32(r)
	if err != nil {
		return d, err
	}
	if length != uint32(len(d)) {
		return d, fmt.Errorf("protocols: unexpected digest length %d", length)
	}
	if _, err := readExactly(r, d[:]); err != nil {
		return d, fmt.Errorf("protocols: reading digest bytes: %w", err)
	}
	return d, nil
}

func readPath(r *bytes.Reader) (core.AuthPath, error) {
	var countBuf [8]byte
	if _, err := readExactly(r, countBuf[:]); err != nil {
		return nil, fmt.Errorf("protocols: reading path count: %w", err)
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	path := make(core.AuthPath, count)
	for i := range path {
		d, err := readDigest(r)
		if err != nil {
			return nil, fmt.Errorf("protocols: reading path digest %d: %w", i, err)
		}
		path[i] = d
	}
	return path, nil
}

func readOpening(r *bytes.Reader) (Opening, error) {
	value, err := readU32(r)
	if err != nil {
		return Opening{}, err
	}
	path, err := readPath(r)
	if err != nil {
		return Opening{}, err
	}
	return Opening{Value: value, Path: path}, nil
}
