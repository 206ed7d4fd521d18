package wire

type BasicQos struct {
	PrefetchSize  uint32
	PrefetchCount uint16
	Global        bool
}

func (*BasicQos) ClassID() uint16  { return ClassBasic }
func (*BasicQos) MethodID() uint16 { return MethodBasicQos }
func (m *BasicQos) synchronous()   {}
func (m *BasicQos) Marshal(w *Writer) {
	w.Long(m.PrefetchSize).Short(m.PrefetchCount).Bool(m.Global)
}
func (m *BasicQos) Unmarshal(r *Reader) error {
	m.PrefetchSize = r.Long()
	m.PrefetchCount = r.Short()
	m.Global = r.Bool()
	return r.Err()
}

type BasicQosOk struct{}

func (*BasicQosOk) ClassID() uint16    { return ClassBasic }
func (*BasicQosOk) MethodID() uint16   { return MethodBasicQosOk }
func (*BasicQosOk) Marshal(*Writer)    {}
func (*BasicQosOk) Unmarshal(r *Reader) error { return r.Err() }

type BasicConsume struct {
	Queue       string
	ConsumerTag string
	NoLocal     bool
	NoAck       bool
	Exclusive   bool
	NoWait      bool
	Arguments   Table
}

func (*BasicConsume) ClassID() uint16  { return ClassBasic }
func (*BasicConsume) MethodID() uint16 { return MethodBasicConsume }
func (m *BasicConsume) synchronous()   {}
func (m *BasicConsume) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).Shortstr(m.ConsumerTag).
		Bool(m.NoLocal).Bool(m.NoAck).Bool(m.Exclusive).Bool(m.NoWait).
		Table(m.Arguments)
}
func (m *BasicConsume) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.ConsumerTag = r.Shortstr()
	m.NoLocal = r.Bool()
	m.NoAck = r.Bool()
	m.Exclusive = r.Bool()
	m.NoWait = r.Bool()
	m.Arguments = r.Table()
	return r.Err()
}

type BasicConsumeOk struct {
	ConsumerTag string
}

func (*BasicConsumeOk) ClassID() uint16  { return ClassBasic }
func (*BasicConsumeOk) MethodID() uint16 { return MethodBasicConsumeOk }
func (m *BasicConsumeOk) Marshal(w *Writer) { w.Shortstr(m.ConsumerTag) }
func (m *BasicConsumeOk) Unmarshal(r *Reader) error {
	m.ConsumerTag = r.Shortstr()
	return r.Err()
}

type BasicCancel struct {
	ConsumerTag string
	NoWait      bool
}

func (*BasicCancel) ClassID() uint16  { return ClassBasic }
func (*BasicCancel) MethodID() uint16 { return MethodBasicCancel }
func (m *BasicCancel) synchronous()   {}
func (m *BasicCancel) Marshal(w *Writer) { w.Shortstr(m.ConsumerTag).Bool(m.NoWait) }
func (m *BasicCancel) Unmarshal(r *Reader) error {
	m.ConsumerTag = r.Shortstr()
	m.NoWait = r.Bool()
	return r.Err()
}

type BasicCancelOk struct {
	ConsumerTag string
}

func (*BasicCancelOk) ClassID() uint16  { return ClassBasic }
func (*BasicCancelOk) MethodID() uint16 { return MethodBasicCancelOk }
func (m *BasicCancelOk) Marshal(w *Writer) { w.Shortstr(m.ConsumerTag) }
func (m *BasicCancelOk) Unmarshal(r *Reader) error {
	m.ConsumerTag = r.Shortstr()
	return r.Err()
}

// BasicPublish is content-bearing: it is always followed by a
// content-header and zero or more body frames.
type BasicPublish struct {
	Exchange   string
	RoutingKey string
	Mandatory  bool
	Immediate  bool
}

func (*BasicPublish) ClassID() uint16  { return ClassBasic }
func (*BasicPublish) MethodID() uint16 { return MethodBasicPublish }
func (*BasicPublish) contentBearing()  {}
func (m *BasicPublish) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Exchange).Shortstr(m.RoutingKey).Bool(m.Mandatory).Bool(m.Immediate)
}
func (m *BasicPublish) Unmarshal(r *Reader) error {
	r.Short()
	m.Exchange = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	m.Mandatory = r.Bool()
	m.Immediate = r.Bool()
	return r.Err()
}

// BasicReturn is content-bearing: an unroutable mandatory/immediate
// publish bounces back with the message content attached.
type BasicReturn struct {
	ReplyCode  uint16
	ReplyText  string
	Exchange   string
	RoutingKey string
}

func (*BasicReturn) ClassID() uint16  { return ClassBasic }
func (*BasicReturn) MethodID() uint16 { return MethodBasicReturn }
func (*BasicReturn) contentBearing()  {}
func (m *BasicReturn) Marshal(w *Writer) {
	w.Short(m.ReplyCode).Shortstr(m.ReplyText).Shortstr(m.Exchange).Shortstr(m.RoutingKey)
}
func (m *BasicReturn) Unmarshal(r *Reader) error {
	m.ReplyCode = r.Short()
	m.ReplyText = r.Shortstr()
	m.Exchange = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	return r.Err()
}

// BasicDeliver is content-bearing: a consumer delivery.
type BasicDeliver struct {
	ConsumerTag string
	DeliveryTag uint64
	Redelivered bool
	Exchange    string
	RoutingKey  string
}

func (*BasicDeliver) ClassID() uint16  { return ClassBasic }
func (*BasicDeliver) MethodID() uint16 { return MethodBasicDeliver }
func (*BasicDeliver) contentBearing()  {}
func (m *BasicDeliver) Marshal(w *Writer) {
	w.Shortstr(m.ConsumerTag).Longlong(m.DeliveryTag).Bool(m.Redelivered).
		Shortstr(m.Exchange).Shortstr(m.RoutingKey)
}
func (m *BasicDeliver) Unmarshal(r *Reader) error {
	m.ConsumerTag = r.Shortstr()
	m.DeliveryTag = r.Longlong()
	m.Redelivered = r.Bool()
	m.Exchange = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	return r.Err()
}

type BasicGet struct {
	Queue  string
	NoAck  bool
}

func (*BasicGet) ClassID() uint16  { return ClassBasic }
func (*BasicGet) MethodID() uint16 { return MethodBasicGet }
func (m *BasicGet) synchronous()   {}
func (m *BasicGet) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Queue).Bool(m.NoAck)
}
func (m *BasicGet) Unmarshal(r *Reader) error {
	r.Short()
	m.Queue = r.Shortstr()
	m.NoAck = r.Bool()
	return r.Err()
}

// BasicGetOk is content-bearing: the one matching reply to a BasicGet
// that found a message. A BasicGetOk with body_size 0 completes the
// content immediately, with no body frames following.
type BasicGetOk struct {
	DeliveryTag  uint64
	Redelivered  bool
	Exchange     string
	RoutingKey   string
	MessageCount uint32
}

func (*BasicGetOk) ClassID() uint16  { return ClassBasic }
func (*BasicGetOk) MethodID() uint16 { return MethodBasicGetOk }
func (*BasicGetOk) contentBearing()  {}
func (m *BasicGetOk) Marshal(w *Writer) {
	w.Longlong(m.DeliveryTag).Bool(m.Redelivered).Shortstr(m.Exchange).
		Shortstr(m.RoutingKey).Long(m.MessageCount)
}
func (m *BasicGetOk) Unmarshal(r *Reader) error {
	m.DeliveryTag = r.Longlong()
	m.Redelivered = r.Bool()
	m.Exchange = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	m.MessageCount = r.Long()
	return r.Err()
}

// BasicGetEmpty is the reply to a BasicGet that found no message; it is
// NOT content-bearing.
type BasicGetEmpty struct{}

func (*BasicGetEmpty) ClassID() uint16    { return ClassBasic }
func (*BasicGetEmpty) MethodID() uint16   { return MethodBasicGetEmpty }
func (*BasicGetEmpty) Marshal(w *Writer)  { w.Shortstr("") }
func (m *BasicGetEmpty) Unmarshal(r *Reader) error {
	r.Shortstr() // reserved: historical "cluster-id"
	return r.Err()
}

// BasicAck/BasicNack double as publisher-confirm acknowledgements (sent
// by the broker once confirm.select is active) and consumer
// acknowledgements (sent by the client); neither expects a reply.
type BasicAck struct {
	DeliveryTag uint64
	Multiple    bool
}

func (*BasicAck) ClassID() uint16  { return ClassBasic }
func (*BasicAck) MethodID() uint16 { return MethodBasicAck }
func (m *BasicAck) Marshal(w *Writer) { w.Longlong(m.DeliveryTag).Bool(m.Multiple) }
func (m *BasicAck) Unmarshal(r *Reader) error {
	m.DeliveryTag = r.Longlong()
	m.Multiple = r.Bool()
	return r.Err()
}

type BasicReject struct {
	DeliveryTag uint64
	Requeue     bool
}

func (*BasicReject) ClassID() uint16  { return ClassBasic }
func (*BasicReject) MethodID() uint16 { return MethodBasicReject }
func (m *BasicReject) Marshal(w *Writer) { w.Longlong(m.DeliveryTag).Bool(m.Requeue) }
func (m *BasicReject) Unmarshal(r *Reader) error {
	m.DeliveryTag = r.Longlong()
	m.Requeue = r.Bool()
	return r.Err()
}

type BasicRecoverAsync struct {
	Requeue bool
}

func (*BasicRecoverAsync) ClassID() uint16  { return ClassBasic }
func (*BasicRecoverAsync) MethodID() uint16 { return MethodBasicRecoverAsync }
func (m *BasicRecoverAsync) Marshal(w *Writer) { w.Bool(m.Requeue) }
func (m *BasicRecoverAsync) Unmarshal(r *Reader) error {
	m.Requeue = r.Bool()
	return r.Err()
}

type BasicRecover struct {
	Requeue bool
}

func (*BasicRecover) ClassID() uint16  { return ClassBasic }
func (*BasicRecover) MethodID() uint16 { return MethodBasicRecover }
func (m *BasicRecover) synchronous()   {}
func (m *BasicRecover) Marshal(w *Writer) { w.Bool(m.Requeue) }
func (m *BasicRecover) Unmarshal(r *Reader) error {
	m.Requeue = r.Bool()
	return r.Err()
}

type BasicRecoverOk struct{}

func (*BasicRecoverOk) ClassID() uint16    { return ClassBasic }
func (*BasicRecoverOk) MethodID() uint16   { return MethodBasicRecoverOk }
func (*BasicRecoverOk) Marshal(*Writer)    {}
func (*BasicRecoverOk) Unmarshal(r *Reader) error { return r.Err() }

type BasicNack struct {
	DeliveryTag uint64
	Multiple    bool
	Requeue     bool
}

func (*BasicNack) ClassID() uint16  { return ClassBasic }
func (*BasicNack) MethodID() uint16 { return MethodBasicNack }
func (m *BasicNack) Marshal(w *Writer) {
	w.Longlong(m.DeliveryTag).Bool(m.Multiple).Bool(m.Requeue)
}
func (m *BasicNack) Unmarshal(r *Reader) error {
	m.DeliveryTag = r.Longlong()
	m.Multiple = r.Bool()
	m.Requeue = r.Bool()
	return r.Err()
}
