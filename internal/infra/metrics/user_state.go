package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(userStateOpsTotal) }

var userStateOpsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "user_state_ops_total",
		Help: "Per-user state store operations by backend, op and result.",
	},
	[]string{"backend", "op", "result"}, // e.g., backend="redis", op="add_favorite", result="ok"
)

func IncUserStateOp(backend, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	userStateOpsTotal.WithLabelValues(norm(backend), norm(op), result).Inc()
}
