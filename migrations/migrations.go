package migrations

import (
	"database/sql"
	"time"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS creatures (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		scientific_name VARCHAR(255),
		category_id INT NOT NULL,
		description TEXT,
		habitat TEXT,
		diet TEXT,
		lifespan VARCHAR(100),
		conservation_status VARCHAR(100),
		image_url TEXT,
		fun_facts TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (category_id) REFERENCES categories(id)
	);`,
	`CREATE TABLE IF NOT EXISTS feedback (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NOT NULL,
		creature_id INT NOT NULL,
		comment TEXT NOT NULL,
		rating INT NULL CHECK (rating >= 1 AND rating <= 5),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (creature_id) REFERENCES creatures(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS images (
		id INT AUTO_INCREMENT PRIMARY KEY,
		creature_id INT NOT NULL UNIQUE,
		image_data LONGBLOB NOT NULL,
		content_type VARCHAR(50) NOT NULL DEFAULT 'image/jpeg',
		original_url TEXT,
		file_size INT NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		FOREIGN KEY (creature_id) REFERENCES creatures(id) ON DELETE CASCADE
	);`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id INT AUTO_INCREMENT PRIMARY KEY,
		user_id INT NULL,
		username VARCHAR(255),
		action VARCHAR(100) NOT NULL,
		details TEXT,
		ip_address VARCHAR(45),
		user_agent TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL,
		INDEX idx_activity_logs_action (action),
		INDEX idx_activity_logs_created (created_at DESC)
	);`,
}

// AutoMigrate creates the gallery tables if they do not exist. Table
// order matters: creatures reference categories, feedback and images
// reference creatures.
func AutoMigrate(retries int, db *sql.DB) error {
	for _, query := range tables {
		_, err := db.Exec(query)
		if err != nil {
			// Retry creating the table
			for i := 0; i < retries; i++ {
				time.Sleep(1 * time.Second)
				_, err = db.Exec(query)
				if err == nil {
					break
				}
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
