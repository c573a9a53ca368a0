package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		telegramCommandsReceivedTotal,
		telegramInlineQueriesTotal,
		telegramCallbacksTotal,
		telegramRateLimitTriggeredTotal,
		telegramUpdateErrorsTotal,
	)
}

var (
	telegramCommandsReceivedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_commands_received_total",
			Help: "Counts incoming messages and commands from users.",
		},
		[]string{"command"},
	)

	telegramInlineQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_inline_queries_total",
			Help: "Inline queries by resolved query kind.",
		},
		[]string{"kind"},
	)

	telegramCallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telegram_callbacks_total",
			Help: "Button callbacks by action and outcome.",
		},
		[]string{"action", "result"},
	)

	telegramRateLimitTriggeredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_rate_limit_triggered_total",
			Help: "Total number of times users have been rate-limited.",
		},
	)

	telegramUpdateErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telegram_update_errors_total",
			Help: "Updates whose handler returned an error.",
		},
	)
)

func IncTelegramCommand(command string) {
	telegramCommandsReceivedTotal.WithLabelValues(norm(command)).Inc()
}

func IncInlineQuery(kind string) {
	telegramInlineQueriesTotal.WithLabelValues(norm(kind)).Inc()
}

func IncCallback(action, result string) {
	telegramCallbacksTotal.WithLabelValues(norm(action), norm(result)).Inc()
}

func IncRateLimitTriggered() {
	telegramRateLimitTriggeredTotal.Inc()
}

func IncUpdateError() {
	telegramUpdateErrorsTotal.Inc()
}
