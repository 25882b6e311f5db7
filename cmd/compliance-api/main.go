package main

import "finpol-compliance/internal/bootstrap/api"

// @title FinPol Compliance API
// @version 1.0
// @description Оценка рисков транзакций и проверка соответствия требованиям AML
// @host localhost:8000
// @BasePath /api/v1
func main() { api.StartComplianceAPI() }
