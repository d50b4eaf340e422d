package loader

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	"wsm/config"
)

//go:embed schema.sql
var schemaSQL string

// InitDatabase applies the schema and installs every trigger. Safe to run on
// every startup; tables and the profit triggers are created IF NOT EXISTS and
// the score triggers are reinstalled from the configured weights.
func InitDatabase(db *sqlx.DB, cfg config.Config) error {
	log.Println("Applying database schema...")
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	if err := ApplyScoreTriggers(db, cfg); err != nil {
		return fmt.Errorf("failed to install score triggers: %w", err)
	}
	log.Println("Schema applied successfully.")
	return nil
}

// ApplyScoreTriggers (re)installs the workshop score triggers from the weights
// in cfg. Called at startup and again when the config is saved, so a weight
// change takes effect without a restart. Existing rows keep their old score
// until their next update.
func ApplyScoreTriggers(db *sqlx.DB, cfg config.Config) error {
	expr := fmt.Sprintf(
		"NEW.manpower * %g + NEW.customer_visits * %g + (CASE WHEN NEW.recovery = 'yes' THEN %g ELSE 0 END)",
		cfg.ScoreManpowerWeight, cfg.ScoreVisitWeight, cfg.ScoreRecoveryBonus,
	)

	stmts := []string{
		`DROP TRIGGER IF EXISTS workshop_score_insert`,
		`DROP TRIGGER IF EXISTS workshop_score_update`,
		fmt.Sprintf(`CREATE TRIGGER workshop_score_insert
AFTER INSERT ON workshop
BEGIN
    UPDATE workshop SET score = %s WHERE wk_code = NEW.wk_code;
END`, expr),
		fmt.Sprintf(`CREATE TRIGGER workshop_score_update
AFTER UPDATE OF manpower, customer_visits, recovery ON workshop
BEGIN
    UPDATE workshop SET score = %s WHERE wk_code = NEW.wk_code;
END`, expr),
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("score trigger install failed: %w", err)
		}
	}
	return nil
}
