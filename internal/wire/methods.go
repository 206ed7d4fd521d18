package wire

import "fmt"

// Class and method ids as assigned by the AMQP 0.9.1 class definitions
// (amqp0-9-1.xml): Connection, Channel, Basic, Queue, Exchange, Tx,
// Confirm.
const (
	ClassConnection = 10
	ClassChannel    = 20
	ClassExchange   = 40
	ClassQueue      = 50
	ClassBasic      = 60
	ClassConfirm    = 85
	ClassTx         = 90
)

const (
	MethodConnectionStart     = 10
	MethodConnectionStartOk   = 11
	MethodConnectionSecure    = 20
	MethodConnectionSecureOk  = 21
	MethodConnectionTune      = 30
	MethodConnectionTuneOk    = 31
	MethodConnectionOpen      = 40
	MethodConnectionOpenOk    = 41
	MethodConnectionClose     = 50
	MethodConnectionCloseOk   = 51
	MethodConnectionBlocked   = 60
	MethodConnectionUnblocked = 61

	MethodChannelOpen    = 10
	MethodChannelOpenOk  = 11
	MethodChannelFlow    = 20
	MethodChannelFlowOk  = 21
	MethodChannelClose   = 40
	MethodChannelCloseOk = 41

	MethodExchangeDeclare   = 10
	MethodExchangeDeclareOk = 11
	MethodExchangeDelete    = 20
	MethodExchangeDeleteOk  = 21
	MethodExchangeBind      = 30
	MethodExchangeBindOk    = 31
	MethodExchangeUnbind    = 40
	MethodExchangeUnbindOk  = 51

	MethodQueueDeclare   = 10
	MethodQueueDeclareOk = 11
	MethodQueueBind      = 20
	MethodQueueBindOk    = 21
	MethodQueuePurge     = 30
	MethodQueuePurgeOk   = 31
	MethodQueueDelete    = 40
	MethodQueueDeleteOk  = 41
	MethodQueueUnbind    = 50
	MethodQueueUnbindOk  = 51

	MethodBasicQos          = 10
	MethodBasicQosOk        = 11
	MethodBasicConsume      = 20
	MethodBasicConsumeOk    = 21
	MethodBasicCancel       = 30
	MethodBasicCancelOk     = 31
	MethodBasicPublish      = 40
	MethodBasicReturn       = 50
	MethodBasicDeliver      = 60
	MethodBasicGet          = 70
	MethodBasicGetOk        = 71
	MethodBasicGetEmpty     = 72
	MethodBasicAck          = 80
	MethodBasicReject       = 90
	MethodBasicRecoverAsync = 100
	MethodBasicRecover      = 110
	MethodBasicRecoverOk    = 111
	MethodBasicNack         = 120

	MethodTxSelect     = 10
	MethodTxSelectOk   = 11
	MethodTxCommit     = 20
	MethodTxCommitOk   = 21
	MethodTxRollback   = 30
	MethodTxRollbackOk = 31

	MethodConfirmSelect   = 10
	MethodConfirmSelectOk = 11
)

// Method is any AMQP method argument list. ClassID/MethodID identify the
// concrete wire method; ContentBearing reports whether this method is
// followed by a content-header and zero or more body frames (basic.deliver,
// basic.get-ok, basic.return, and basic.publish on the outbound side).
type Method interface {
	ClassID() uint16
	MethodID() uint16
	Marshal(w *Writer)
	Unmarshal(r *Reader) error
}

// ContentBearing is implemented by methods that carry a following
// content-header + body.
type ContentBearing interface {
	Method
	contentBearing()
}

// Synchronous is implemented by methods that expect a direct reply from
// the peer on the same channel, as opposed to a fire-and-forget method
// such as basic.publish.
type Synchronous interface {
	Method
	synchronous()
}

func classMethodKey(classID, methodID uint16) uint32 {
	return uint32(classID)<<16 | uint32(methodID)
}

type decodeFunc func() Method

var registry = map[uint32]decodeFunc{}

func register(classID, methodID uint16, fn decodeFunc) {
	registry[classMethodKey(classID, methodID)] = fn
}

// Decode parses a method frame's payload: a 2-byte class id, a 2-byte
// method id, then the method's typed arguments. Unknown class/method
// combinations report ErrUnknownMethod.
func Decode(payload []byte) (Method, error) {
	r := NewReader(payload)
	classID := r.Short()
	methodID := r.Short()
	fn, ok := registry[classMethodKey(classID, methodID)]
	if !ok {
		return nil, &ErrUnknownMethod{ClassID: classID, MethodID: methodID}
	}
	m := fn()
	if err := m.Unmarshal(r); err != nil {
		return nil, err
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Encode serializes a method's class id, method id, and arguments.
func Encode(m Method) ([]byte, error) {
	w := NewWriter()
	w.Short(m.ClassID())
	w.Short(m.MethodID())
	m.Marshal(w)
	if err := w.Err(); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// ErrUnknownMethod is returned by Decode for a class/method id pair this
// codec doesn't recognize.
type ErrUnknownMethod struct {
	ClassID  uint16
	MethodID uint16
}

func (e *ErrUnknownMethod) Error() string {
	return fmt.Sprintf("wire: unknown method class=%d method=%d", e.ClassID, e.MethodID)
}

func init() {
	register(ClassConnection, MethodConnectionStart, func() Method { return &ConnectionStart{} })
	register(ClassConnection, MethodConnectionStartOk, func() Method { return &ConnectionStartOk{} })
	register(ClassConnection, MethodConnectionTune, func() Method { return &ConnectionTune{} })
	register(ClassConnection, MethodConnectionTuneOk, func() Method { return &ConnectionTuneOk{} })
	register(ClassConnection, MethodConnectionOpen, func() Method { return &ConnectionOpen{} })
	register(ClassConnection, MethodConnectionOpenOk, func() Method { return &ConnectionOpenOk{} })
	register(ClassConnection, MethodConnectionClose, func() Method { return &ConnectionClose{} })
	register(ClassConnection, MethodConnectionCloseOk, func() Method { return &ConnectionCloseOk{} })
	register(ClassConnection, MethodConnectionBlocked, func() Method { return &ConnectionBlocked{} })
	register(ClassConnection, MethodConnectionUnblocked, func() Method { return &ConnectionUnblocked{} })

	register(ClassChannel, MethodChannelOpen, func() Method { return &ChannelOpen{} })
	register(ClassChannel, MethodChannelOpenOk, func() Method { return &ChannelOpenOk{} })
	register(ClassChannel, MethodChannelFlow, func() Method { return &ChannelFlow{} })
	register(ClassChannel, MethodChannelFlowOk, func() Method { return &ChannelFlowOk{} })
	register(ClassChannel, MethodChannelClose, func() Method { return &ChannelClose{} })
	register(ClassChannel, MethodChannelCloseOk, func() Method { return &ChannelCloseOk{} })

	register(ClassExchange, MethodExchangeDeclare, func() Method { return &ExchangeDeclare{} })
	register(ClassExchange, MethodExchangeDeclareOk, func() Method { return &ExchangeDeclareOk{} })
	register(ClassExchange, MethodExchangeDelete, func() Method { return &ExchangeDelete{} })
	register(ClassExchange, MethodExchangeDeleteOk, func() Method { return &ExchangeDeleteOk{} })
	register(ClassExchange, MethodExchangeBind, func() Method { return &ExchangeBind{} })
	register(ClassExchange, MethodExchangeBindOk, func() Method { return &ExchangeBindOk{} })
	register(ClassExchange, MethodExchangeUnbind, func() Method { return &ExchangeUnbind{} })
	register(ClassExchange, MethodExchangeUnbindOk, func() Method { return &ExchangeUnbindOk{} })

	register(ClassQueue, MethodQueueDeclare, func() Method { return &QueueDeclare{} })
	register(ClassQueue, MethodQueueDeclareOk, func() Method { return &QueueDeclareOk{} })
	register(ClassQueue, MethodQueueBind, func() Method { return &QueueBind{} })
	register(ClassQueue, MethodQueueBindOk, func() Method { return &QueueBindOk{} })
	register(ClassQueue, MethodQueuePurge, func() Method { return &QueuePurge{} })
	register(ClassQueue, MethodQueuePurgeOk, func() Method { return &QueuePurgeOk{} })
	register(ClassQueue, MethodQueueDelete, func() Method { return &QueueDelete{} })
	register(ClassQueue, MethodQueueDeleteOk, func() Method { return &QueueDeleteOk{} })
	register(ClassQueue, MethodQueueUnbind, func() Method { return &QueueUnbind{} })
	register(ClassQueue, MethodQueueUnbindOk, func() Method { return &QueueUnbindOk{} })

	register(ClassBasic, MethodBasicQos, func() Method { return &BasicQos{} })
	register(ClassBasic, MethodBasicQosOk, func() Method { return &BasicQosOk{} })
	register(ClassBasic, MethodBasicConsume, func() Method { return &BasicConsume{} })
	register(ClassBasic, MethodBasicConsumeOk, func() Method { return &BasicConsumeOk{} })
	register(ClassBasic, MethodBasicCancel, func() Method { return &BasicCancel{} })
	register(ClassBasic, MethodBasicCancelOk, func() Method { return &BasicCancelOk{} })
	register(ClassBasic, MethodBasicPublish, func() Method { return &BasicPublish{} })
	register(ClassBasic, MethodBasicReturn, func() Method { return &BasicReturn{} })
	register(ClassBasic, MethodBasicDeliver, func() Method { return &BasicDeliver{} })
	register(ClassBasic, MethodBasicGet, func() Method { return &BasicGet{} })
	register(ClassBasic, MethodBasicGetOk, func() Method { return &BasicGetOk{} })
	register(ClassBasic, MethodBasicGetEmpty, func() Method { return &BasicGetEmpty{} })
	register(ClassBasic, MethodBasicAck, func() Method { return &BasicAck{} })
	register(ClassBasic, MethodBasicReject, func() Method { return &BasicReject{} })
	register(ClassBasic, MethodBasicRecoverAsync, func() Method { return &BasicRecoverAsync{} })
	register(ClassBasic, MethodBasicRecover, func() Method { return &BasicRecover{} })
	register(ClassBasic, MethodBasicRecoverOk, func() Method { return &BasicRecoverOk{} })
	register(ClassBasic, MethodBasicNack, func() Method { return &BasicNack{} })

	register(ClassTx, MethodTxSelect, func() Method { return &TxSelect{} })
	register(ClassTx, MethodTxSelectOk, func() Method { return &TxSelectOk{} })
	register(ClassTx, MethodTxCommit, func() Method { return &TxCommit{} })
	register(ClassTx, MethodTxCommitOk, func() Method { return &TxCommitOk{} })
	register(ClassTx, MethodTxRollback, func() Method { return &TxRollback{} })
	register(ClassTx, MethodTxRollbackOk, func() Method { return &TxRollbackOk{} })

	register(ClassConfirm, MethodConfirmSelect, func() Method { return &ConfirmSelect{} })
	register(ClassConfirm, MethodConfirmSelectOk, func() Method { return &ConfirmSelectOk{} })
}
