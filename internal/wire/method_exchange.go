package wire

type ExchangeDeclare struct {
	Exchange   string
	Type       string
	Passive    bool
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Arguments  Table
}

func (*ExchangeDeclare) ClassID() uint16  { return ClassExchange }
func (*ExchangeDeclare) MethodID() uint16 { return MethodExchangeDeclare }
func (m *ExchangeDeclare) synchronous()   {}
func (m *ExchangeDeclare) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Exchange).Shortstr(m.Type).
		Bool(m.Passive).Bool(m.Durable).Bool(m.AutoDelete).Bool(m.Internal).Bool(m.NoWait).
		Table(m.Arguments)
}
func (m *ExchangeDeclare) Unmarshal(r *Reader) error {
	r.Short() // reserved: historical "ticket"
	m.Exchange = r.Shortstr()
	m.Type = r.Shortstr()
	m.Passive = r.Bool()
	m.Durable = r.Bool()
	m.AutoDelete = r.Bool()
	m.Internal = r.Bool()
	m.NoWait = r.Bool()
	m.Arguments = r.Table()
	return r.Err()
}

type ExchangeDeclareOk struct{}

func (*ExchangeDeclareOk) ClassID() uint16    { return ClassExchange }
func (*ExchangeDeclareOk) MethodID() uint16   { return MethodExchangeDeclareOk }
func (*ExchangeDeclareOk) Marshal(*Writer)    {}
func (*ExchangeDeclareOk) Unmarshal(r *Reader) error { return r.Err() }

type ExchangeDelete struct {
	Exchange string
	IfUnused bool
	NoWait   bool
}

func (*ExchangeDelete) ClassID() uint16  { return ClassExchange }
func (*ExchangeDelete) MethodID() uint16 { return MethodExchangeDelete }
func (m *ExchangeDelete) synchronous()   {}
func (m *ExchangeDelete) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Exchange).Bool(m.IfUnused).Bool(m.NoWait)
}
func (m *ExchangeDelete) Unmarshal(r *Reader) error {
	r.Short()
	m.Exchange = r.Shortstr()
	m.IfUnused = r.Bool()
	m.NoWait = r.Bool()
	return r.Err()
}

type ExchangeDeleteOk struct{}

func (*ExchangeDeleteOk) ClassID() uint16    { return ClassExchange }
func (*ExchangeDeleteOk) MethodID() uint16   { return MethodExchangeDeleteOk }
func (*ExchangeDeleteOk) Marshal(*Writer)    {}
func (*ExchangeDeleteOk) Unmarshal(r *Reader) error { return r.Err() }

type ExchangeBind struct {
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   Table
}

func (*ExchangeBind) ClassID() uint16  { return ClassExchange }
func (*ExchangeBind) MethodID() uint16 { return MethodExchangeBind }
func (m *ExchangeBind) synchronous()   {}
func (m *ExchangeBind) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Destination).Shortstr(m.Source).Shortstr(m.RoutingKey).
		Bool(m.NoWait).Table(m.Arguments)
}
func (m *ExchangeBind) Unmarshal(r *Reader) error {
	r.Short()
	m.Destination = r.Shortstr()
	m.Source = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	m.NoWait = r.Bool()
	m.Arguments = r.Table()
	return r.Err()
}

type ExchangeBindOk struct{}

func (*ExchangeBindOk) ClassID() uint16    { return ClassExchange }
func (*ExchangeBindOk) MethodID() uint16   { return MethodExchangeBindOk }
func (*ExchangeBindOk) Marshal(*Writer)    {}
func (*ExchangeBindOk) Unmarshal(r *Reader) error { return r.Err() }

type ExchangeUnbind struct {
	Destination string
	Source      string
	RoutingKey  string
	NoWait      bool
	Arguments   Table
}

func (*ExchangeUnbind) ClassID() uint16  { return ClassExchange }
func (*ExchangeUnbind) MethodID() uint16 { return MethodExchangeUnbind }
func (m *ExchangeUnbind) synchronous()   {}
func (m *ExchangeUnbind) Marshal(w *Writer) {
	w.Short(0).Shortstr(m.Destination).Shortstr(m.Source).Shortstr(m.RoutingKey).
		Bool(m.NoWait).Table(m.Arguments)
}
func (m *ExchangeUnbind) Unmarshal(r *Reader) error {
	r.Short()
	m.Destination = r.Shortstr()
	m.Source = r.Shortstr()
	m.RoutingKey = r.Shortstr()
	m.NoWait = r.Bool()
	m.Arguments = r.Table()
	return r.Err()
}

type ExchangeUnbindOk struct{}

func (*ExchangeUnbindOk) ClassID() uint16    { return ClassExchange }
func (*ExchangeUnbindOk) MethodID() uint16   { return MethodExchangeUnbindOk }
func (*ExchangeUnbindOk) Marshal(*Writer)    {}
func (*ExchangeUnbindOk) Unmarshal(r *Reader) error { return r.Err() }
