package wire

type QueueDeclare struct {
	Queue      string
	Passive    bool
	Durable    bool
	Exclusive  bool
	AutoDelete bool
	NoWait     bool
	Arguments  Table
}

func (*QueueDeclare) ClassID() uint16  { return ClassQueue }
func (*QueueDeclare) MethodID() uint16 { return MethodQueueDeclare }
func (m *QueueDeclare) synchronous()   {}
func (m *QueueDeclare) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).
		Bool(m.Passive).Bool(m.Durable).Bool(m.Exclusive).Bool(m.AutoDelete).Bool(m.NoWait).
		Table(m.Arguments)
}
func (m *QueueDeclare) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.Passive = r.Bool()
	m.Durable = r.Bool()
	m.Exclusive = r.Bool()
	m.AutoDelete = r.Bool()
	m.NoWait = r.Bool()
	m.Arguments = r.Table()
	return r.Err()
}

type QueueDeclareOk struct {
	Queue         string
	MessageCount  uint32
	ConsumerCount uint32
}

func (*QueueDeclareOk) ClassID() uint16  { return ClassQueue }
func (*QueueDeclareOk) MethodID() uint16 { return MethodQueueDeclareOk }
func (m *QueueDeclareOk) Marshal(w *Writer) {
	w.Shortstr(m.Queue).Long(m.MessageCount).Long(m.ConsumerCount)
}
func (m *QueueDeclareOk) Unmarshal(r *Reader) error {
	m.Queue = r.Shortstr()
	m.MessageCount = r.Long()
	m.ConsumerCount = r.Long()
	return r.Err()
}

type QueueBind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	NoWait     bool
	Arguments  Table
}

func (*QueueBind) ClassID() uint16  { return ClassQueue }
func (*QueueBind) MethodID() uint16 { return MethodQueueBind }
func (m *QueueBind) synchronous()   {}
func (m *QueueBind) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).Shortstr(m.Exchange).Shortstr(m.RoutingKey).
		Bool(m.NoWait).Table(m.Arguments)
}
func (m *QueueBind) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.Exchange = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	m.NoWait = r.Bool()
	m.Arguments = r.Table()
	return r.Err()
}

type QueueBindOk struct{}

func (*QueueBindOk) ClassID() uint16    { return ClassQueue }
func (*QueueBindOk) MethodID() uint16   { return MethodQueueBindOk }
func (*QueueBindOk) Marshal(*Writer)    {}
func (*QueueBindOk) Unmarshal(r *Reader) error { return r.Err() }

type QueuePurge struct {
	Queue  string
	NoWait bool
}

func (*QueuePurge) ClassID() uint16  { return ClassQueue }
func (*QueuePurge) MethodID() uint16 { return MethodQueuePurge }
func (m *QueuePurge) synchronous()   {}
func (m *QueuePurge) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).Bool(m.NoWait)
}
func (m *QueuePurge) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.NoWait = r.Bool()
	return r.Err()
}

type QueuePurgeOk struct {
	MessageCount uint32
}

func (*QueuePurgeOk) ClassID() uint16  { return ClassQueue }
func (*QueuePurgeOk) MethodID() uint16 { return MethodQueuePurgeOk }
func (m *QueuePurgeOk) Marshal(w *Writer) { w.Long(m.MessageCount) }
func (m *QueuePurgeOk) Unmarshal(r *Reader) error {
	m.MessageCount = r.Long()
	return r.Err()
}

type QueueDelete struct {
	Queue    string
	IfUnused bool
	IfEmpty  bool
	NoWait   bool
}

func (*QueueDelete) ClassID() uint16  { return ClassQueue }
func (*QueueDelete) MethodID() uint16 { return MethodQueueDelete }
func (m *QueueDelete) synchronous()   {}
func (m *QueueDelete) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).Bool(m.IfUnused).Bool(m.IfEmpty).Bool(m.NoWait)
}
func (m *QueueDelete) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.IfUnused = r.Bool()
	m.IfEmpty = r.Bool()
	m.NoWait = r.Bool()
	return r.Err()
}

type QueueDeleteOk struct {
	MessageCount uint32
}

func (*QueueDeleteOk) ClassID() uint16  { return ClassQueue }
func (*QueueDeleteOk) MethodID() uint16 { return MethodQueueDeleteOk }
func (m *QueueDeleteOk) Marshal(w *Writer) { w.Long(m.MessageCount) }
func (m *QueueDeleteOk) Unmarshal(r *Reader) error {
	m.MessageCount = r.Long()
	return r.Err()
}

type QueueUnbind struct {
	Queue      string
	Exchange   string
	RoutingKey string
	Arguments  Table
}

func (*QueueUnbind) ClassID() uint16  { return ClassQueue }
func (*QueueUnbind) MethodID() uint16 { return MethodQueueUnbind }
func (m *QueueUnbind) synchronous()   {}
func (m *QueueUnbind) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).Shortstr(m.Exchange).Shortstr(m.RoutingKey).Table(m.Arguments)
}
func (m *QueueUnbind) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.Exchange = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	m.Arguments = r.Table()
	return r.Err()
}

type QueueUnbindOk struct{}

func (*QueueUnbindOk) ClassID() uint16    { return ClassQueue }
func (*QueueUnbindOk) MethodID() uint16   { return MethodQueueUnbindOk }
func (*QueueUnbindOk) Marshal(*Writer)    {}
func (*QueueUnbindOk) Unmarshal(r *Reader) error { return r.Err() }
