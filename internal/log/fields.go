package log

// Standard component names used across the binaries.
const (
	ComponentAPI     = "api"
	ComponentWeb     = "web"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentAdjust  = "adjust"
	ComponentSeed    = "seed"
)
