package localization

import (
	"encoding/binary"
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"

	"locstone/internal/diagid"
)

// Serialized table layout, all integers little-endian:
//
//	[0..4)            index offset
//	[4..indexOff)     message bytes, concatenated
//	[indexOff..)      count uint32, then count entries of
//	                  (id uint32, off uint32, len uint32) sorted by id;
//	                  off is relative to the start of the buffer.
//
// The writer emits a zero placeholder offset first, then seeks back and
// patches it once the index position is known.
const (
	tableHeaderSize = 4
	tableEntrySize  = 12
)

// Writer builds a serialized localization table. Insertions may arrive in
// any order; duplicate ids overwrite. Emit finalizes the file.
type Writer struct {
	entries map[diagid.ID]string
}

func NewWriter() *Writer {
	return &Writer{entries: make(map[diagid.ID]string)}
}

// Insert records the translation for id, replacing any earlier insertion.
func (w *Writer) Insert(id diagid.ID, translation string) {
	w.entries[id] = translation
}

// Emit writes the table to path. Callers use the ".db" extension by
// convention; Emit does not validate it. No partial file is guaranteed to
// be valid on error.
func (w *Writer) Emit(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	ids := make([]diagid.ID, 0, len(w.entries))
	for id := range w.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Placeholder index offset, patched below.
	var header [tableHeaderSize]byte
	if _, err := f.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	offset := uint32(tableHeaderSize)
	offsets := make([]uint32, len(ids))
	lengths := make([]uint32, len(ids))
	for i, id := range ids {
		msg := w.entries[id]
		n, err := safecast.Conv[uint32](len(msg))
		if err != nil {
			return fmt.Errorf("message for %d too large: %w", id, err)
		}
		if _, err := f.WriteString(msg); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		offsets[i] = offset
		lengths[i] = n
		offset += n
	}

	indexOffset := offset
	count, err := safecast.Conv[uint32](len(ids))
	if err != nil {
		return fmt.Errorf("too many entries: %w", err)
	}
	index := make([]byte, 4+len(ids)*tableEntrySize)
	binary.LittleEndian.PutUint32(index[:4], count)
	for i, id := range ids {
		entry := index[4+i*tableEntrySize:]
		binary.LittleEndian.PutUint32(entry[0:4], uint32(id))
		binary.LittleEndian.PutUint32(entry[4:8], offsets[i])
		binary.LittleEndian.PutUint32(entry[8:12], lengths[i])
	}
	if _, err := f.Write(index); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	binary.LittleEndian.PutUint32(header[:], indexOffset)
	if _, err := f.WriteAt(header[:], 0); err != nil {
		return fmt.Errorf("failed to patch index offset in %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// Table is a read-only view over a serialized table buffer. Lookups return
// subslices of the buffer; nothing is copied. The table borrows the buffer
// for its lifetime.
type Table struct {
	buf   []byte
	index []byte // entry region, count entries of tableEntrySize bytes
	count int
}

// NewTable validates the header and index region of buf and returns a view
// over it. The invariant checked here is that the index lies entirely
// inside the buffer; corruption of individual entries beyond that is the
// caller's responsibility, per the format contract.
func NewTable(buf []byte) (*Table, error) {
	if len(buf) < tableHeaderSize+4 {
		return nil, fmt.Errorf("serialized table truncated: %d bytes", len(buf))
	}
	indexOffset := binary.LittleEndian.Uint32(buf[:tableHeaderSize])
	if uint64(indexOffset) < tableHeaderSize || uint64(indexOffset)+4 > uint64(len(buf)) {
		return nil, fmt.Errorf("serialized table index offset %d out of range", indexOffset)
	}
	count := binary.LittleEndian.Uint32(buf[indexOffset : indexOffset+4])
	end := uint64(indexOffset) + 4 + uint64(count)*tableEntrySize
	if end > uint64(len(buf)) {
		return nil, fmt.Errorf("serialized table index overruns buffer: %d entries", count)
	}
	return &Table{
		buf:   buf,
		index: buf[uint64(indexOffset)+4 : end],
		count: int(count),
	}, nil
}

func (t *Table) entry(i int) (id, off, length uint32) {
	e := t.index[i*tableEntrySize:]
	return binary.LittleEndian.Uint32(e[0:4]),
		binary.LittleEndian.Uint32(e[4:8]),
		binary.LittleEndian.Uint32(e[8:12])
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return t.count
}

// Lookup returns a borrowed view of the translation for id. Nil when the
// table has no entry, the entry is empty, or the entry points outside the
// buffer; all three read as "not localized".
func (t *Table) Lookup(id diagid.ID) []byte {
	i := sort.Search(t.count, func(i int) bool {
		eid, _, _ := t.entry(i)
		return eid >= uint32(id)
	})
	if i == t.count {
		return nil
	}
	eid, off, length := t.entry(i)
	if eid != uint32(id) || length == 0 {
		return nil
	}
	if uint64(off)+uint64(length) > uint64(len(t.buf)) {
		return nil
	}
	return t.buf[off : off+length]
}

// Entry returns the i-th (id, translation) pair. Entries are stored in
// ascending id order.
func (t *Table) Entry(i int) (diagid.ID, []byte) {
	id, off, length := t.entry(i)
	if uint64(off)+uint64(length) > uint64(len(t.buf)) {
		return diagid.ID(id), nil
	}
	return diagid.ID(id), t.buf[off : off+length]
}

// SerializedProducer serves lookups from an in-memory serialized table
// buffer, typically the contents of a <locale>.db file.
type SerializedProducer struct {
	core
	buf   []byte
	table *Table
}

// NewSerializedProducer wraps buf. The buffer is borrowed, not copied, and
// must stay alive and unmodified for the producer's lifetime. No parsing
// happens until the first lookup.
func NewSerializedProducer(space *diagid.Space, buf []byte, debugNames bool) *SerializedProducer {
	return &SerializedProducer{
		core: core{space: space, debugNames: debugNames},
		buf:  buf,
	}
}

func (p *SerializedProducer) load() error {
	table, err := NewTable(p.buf)
	if err != nil {
		return err
	}
	p.table = table
	return nil
}

func (p *SerializedProducer) MessageOrDefault(id diagid.ID, def string) string {
	p.initOnce(p.load)
	if p.state == FailedInitialization {
		return def
	}
	return p.finish(id, string(p.table.Lookup(id)), def)
}

func (p *SerializedProducer) ForEachAvailable(fn func(id diagid.ID, msg string)) {
	p.initOnce(p.load)
	if p.state == FailedInitialization {
		return
	}
	for i := 0; i < p.table.Len(); i++ {
		id, msg := p.table.Entry(i)
		if len(msg) != 0 {
			fn(id, string(msg))
		}
	}
}
