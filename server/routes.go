package server

func (s *Server) setupRoutes() {
	s.app.Post("/webhook", s.webhookHandler)

	s.app.Get("/", s.healthCheckHandler)
	s.app.Get("/health", s.healthCheckHandler)
}
