package main

import "finpol-compliance/internal/bootstrap/worker"

func main() { worker.StartRiskEventsWorker() }
