package metric

import "github.com/prometheus/client_golang/prometheus"

type Service struct {
	apiCallsCounter     *prometheus.CounterVec
	sendOutcomesCounter *prometheus.CounterVec
}

func NewPrometheusService() (*Service, error) {
	apiCallsCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wati_api_calls_counter",
		Help: "WATI API call count per operation and status",
	}, []string{"operation", "status"})

	sendOutcomesCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wati_send_outcomes_counter",
		Help: "Send attempt count per message kind and outcome",
	}, []string{"kind", "status"})

	s := &Service{
		apiCallsCounter:     apiCallsCounter,
		sendOutcomesCounter: sendOutcomesCounter,
	}
	err := prometheus.Register(s.apiCallsCounter)
	if err != nil && err.Error() != "duplicate metrics collector registration attempted" {
		return nil, err
	}

	err = prometheus.Register(s.sendOutcomesCounter)
	if err != nil && err.Error() != "duplicate metrics collector registration attempted" {
		return nil, err
	}

	return s, nil
}

func (s *Service) SaveAPICall(ac *APICall) {
	s.apiCallsCounter.WithLabelValues(ac.Operation, ac.Status).Inc()
}

func (s *Service) SaveSendOutcome(so *SendOutcome) {
	s.sendOutcomesCounter.WithLabelValues(so.Kind, so.Status).Inc()
}
