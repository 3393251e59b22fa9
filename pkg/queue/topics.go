package queue

// Topics follow gp.<entity>.<event>. They are stable wire names; renaming
// one breaks NATS consumers.
const (
	// TopicProcesoCreated fires after a proceso creation transaction
	// commits. The WhatsApp notifier subscribes to it.
	TopicProcesoCreated = "gp.proceso.created"

	// TopicProcesoVencimiento fires from the daily reminder job for every
	// non-terminal proceso due within the reminder window.
	TopicProcesoVencimiento = "gp.proceso.vencimiento"
)
