package wire

type TxSelect struct{}

func (*TxSelect) ClassID() uint16    { return ClassTx }
func (*TxSelect) MethodID() uint16   { return MethodTxSelect }
func (*TxSelect) synchronous()       {}
func (*TxSelect) Marshal(*Writer)    {}
func (*TxSelect) Unmarshal(r *Reader) error { return r.Err() }

type TxSelectOk struct{}

func (*TxSelectOk) ClassID() uint16    { return ClassTx }
func (*TxSelectOk) MethodID() uint16   { return MethodTxSelectOk }
func (*TxSelectOk) Marshal(*Writer)    {}
func (*TxSelectOk) Unmarshal(r *Reader) error { return r.Err() }

type TxCommit struct{}

func (*TxCommit) ClassID() uint16    { return ClassTx }
func (*TxCommit) MethodID() uint16   { return MethodTxCommit }
func (*TxCommit) synchronous()       {}
func (*TxCommit) Marshal(*Writer)    {}
func (*TxCommit) Unmarshal(r *Reader) error { return r.Err() }

type TxCommitOk struct{}

func (*TxCommitOk) ClassID() uint16    { return ClassTx }
func (*TxCommitOk) MethodID() uint16   { return MethodTxCommitOk }
func (*TxCommitOk) Marshal(*Writer)    {}
func (*TxCommitOk) Unmarshal(r *Reader) error { return r.Err() }

type TxRollback struct{}

func (*TxRollback) ClassID() uint16    { return ClassTx }
func (*TxRollback) MethodID() uint16   { return MethodTxRollback }
func (*TxRollback) synchronous()       {}
func (*TxRollback) Marshal(*Writer)    {}
func (*TxRollback) Unmarshal(r *Reader) error { return r.Err() }

type TxRollbackOk struct{}

func (*TxRollbackOk) ClassID() uint16    { return ClassTx }
func (*TxRollbackOk) MethodID() uint16   { return MethodTxRollbackOk }
func (*TxRollbackOk) Marshal(*Writer)    {}
func (*TxRollbackOk) Unmarshal(r *Reader) error { return r.Err() }

// ConfirmSelect puts the channel into publisher-confirm mode. Once
// selected, basic.ack/basic.nack frames the broker sends are publisher
// confirmations rather than consumer acknowledgements.
type ConfirmSelect struct {
	NoWait bool
}

func (*ConfirmSelect) ClassID() uint16  { return ClassConfirm }
func (*ConfirmSelect) MethodID() uint16 { return MethodConfirmSelect }
func (m *ConfirmSelect) synchronous()   {}
func (m *ConfirmSelect) Marshal(w *Writer) { w.Bool(m.NoWait) }
func (m *ConfirmSelect) Unmarshal(r *Reader) error {
	m.NoWait = r.Bool()
	return r.Err()
}

type ConfirmSelectOk struct{}

func (*ConfirmSelectOk) ClassID() uint16    { return ClassConfirm }
func (*ConfirmSelectOk) MethodID() uint16   { return MethodConfirmSelectOk }
func (*ConfirmSelectOk) Marshal(*Writer)    {}
func (*ConfirmSelectOk) Unmarshal(r *Reader) error { return r.Err() }
