package app

import "juakali_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(email *email.Email) error             { return nil }
func (m *MockEmailProvider) SendWelcome(to string, fullName string) error { return nil }
func (m *MockEmailProvider) Validate() error                           { return nil }
func (m *MockEmailProvider) Close() error                              { return nil }
