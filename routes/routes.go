package routes

import (
	"spinvault/controllers/account"
	"spinvault/controllers/admin"
	"spinvault/controllers/callback/chain"
	"spinvault/controllers/game"
	"spinvault/controllers/wallet"
	"spinvault/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	// public pool transparency reads
	api.Get("/game/prize-pool", game.PrizePoolHandler)
	api.Get("/game/recent-winners", game.RecentWinnersHandler)

	api.Post("/account/register", account.RegisterHandler)
	api.Post("/account/login", account.LoginHandler)

	authed := api.Group("", middlewares.UserAuthMiddleware)
	authed.Post("/game/spin", game.SpinHandler)
	authed.Get("/game/tickets", game.TicketStatusHandler)
	authed.Post("/game/tickets/claim-free", game.ClaimFreeTicketHandler)
	authed.Post("/game/tickets/purchase", game.PurchaseTicketsHandler)
	authed.Get("/wallet/balance", wallet.BalanceHandler)
	authed.Post("/wallet/withdraw", wallet.WithdrawHandler)

	watcher := app.Group("/callback/chain", middlewares.WatcherAuth())
	watcher.Post("/deposit", chain.DepositHandler)
	watcher.Post("/withdrawal", chain.WithdrawalHandler)

	adminRoutes := api.Group("", middlewares.AdminAuth())
	adminRoutes.Delete("/reset-all", admin.ResetAllHandler)
	adminRoutes.Post("/whitelist", admin.AddWhitelistHandler)
	adminRoutes.Delete("/whitelist", admin.RemoveWhitelistHandler)
}
