package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/mkirwin/exchange-arb/internal/arbitrage"
	"go.uber.org/zap"
)

// PostgresStorage implements Storage using PostgreSQL.
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStorage creates a new PostgreSQL storage.
func NewPostgresStorage(cfg *PostgresConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-storage-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStorage{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// StoreOpportunity stores an arbitrage opportunity in PostgreSQL.
func (p *PostgresStorage) StoreOpportunity(ctx context.Context, opp *arbitrage.Opportunity) error {
	query := `
		INSERT INTO arbitrage_opportunities (
			id, event_name, market_name, sport, detected_at,
			leg1_exchange, leg1_selection, leg1_odds, leg1_stake, leg1_liquidity,
			leg2_exchange, leg2_selection, leg2_odds, leg2_stake, leg2_liquidity,
			implied_sum, profit_margin, roi, total_stake, net_profit,
			config_threshold
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21
		)
	`

	_, err := p.db.ExecContext(ctx, query,
		opp.ID,
		opp.EventName,
		opp.MarketName,
		string(opp.Sport),
		opp.DetectedAt,
		opp.Leg1.Exchange,
		opp.Leg1.Selection,
		opp.Leg1.Odds,
		opp.Leg1.Stake,
		opp.Leg1.Liquidity,
		opp.Leg2.Exchange,
		opp.Leg2.Selection,
		opp.Leg2.Odds,
		opp.Leg2.Stake,
		opp.Leg2.Liquidity,
		opp.ImpliedSum,
		opp.ProfitMargin,
		opp.ROI,
		opp.TotalStake,
		opp.NetProfit,
		opp.ConfigThreshold,
	)

	if err != nil {
		return fmt.Errorf("insert opportunity: %w", err)
	}

	p.logger.Debug("opportunity-stored",
		zap.String("opportunity-id", opp.ID),
		zap.String("event-name", opp.EventName),
		zap.String("market-name", opp.MarketName))

	return nil
}

// Close closes the database connection.
func (p *PostgresStorage) Close() error {
	p.logger.Info("closing-postgres-storage")
	return p.db.Close()
}
