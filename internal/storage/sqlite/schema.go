package sqlite

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS transactions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT UNIQUE NOT NULL,
		user_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		currency TEXT NOT NULL,
		transaction_type TEXT NOT NULL,
		description TEXT,
		sender_account TEXT,
		recipient_account TEXT,
		country TEXT NOT NULL,
		merchant_type TEXT NOT NULL,
		device_risk_score REAL NOT NULL DEFAULT 0,
		timestamp DATETIME NOT NULL,
		risk_score INTEGER,
		risk_level TEXT,
		analyzed_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		CHECK ((risk_score IS NULL) = (risk_level IS NULL))
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_risk_level ON transactions(risk_level);
	CREATE INDEX IF NOT EXISTS idx_transactions_created_at ON transactions(created_at);

	CREATE TABLE IF NOT EXISTS regulations (
		id TEXT PRIMARY KEY,
		code TEXT UNIQUE NOT NULL,
		title TEXT NOT NULL,
		authority TEXT NOT NULL,
		category TEXT NOT NULL,
		content TEXT NOT NULL,
		keywords TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_regulations_category ON regulations(category);
	`

	_, err := s.DB.Exec(query)
	return err
}
