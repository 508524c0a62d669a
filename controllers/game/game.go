package game

import (
	"spinvault/services"
)

var (
	engine     *services.SettlementEngine
	tickets    *services.TicketService
	jackpotCfg services.JackpotConfig
)

// Init wires the controllers to their services. Called once from main before
// routes are registered.
func Init(e *services.SettlementEngine, t *services.TicketService, jc services.JackpotConfig) {
	engine = e
	tickets = t
	jackpotCfg = jc
}
