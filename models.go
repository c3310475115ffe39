package main

import (
	"net/http"

	"github.com/streadway/amqp"

	"github.com/muhammadolammi/icanmatch/internal/advisor"
	"github.com/muhammadolammi/icanmatch/internal/cart"
	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/config"
	"github.com/muhammadolammi/icanmatch/internal/cv"
	"github.com/muhammadolammi/icanmatch/internal/notify"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

// App holds everything main wires together.
type App struct {
	Config    *config.Config
	Catalog   *catalog.Catalog
	Generator recommend.Generator
	Source    *recommend.Source
	Notifier  notify.Notifier
	CVs       *cv.Store
	Carts     *cart.Registry
	Sessions  *swipe.Registry
	Coach     *advisor.Coach
	Matcher   *advisor.Matcher
	Handler   http.Handler

	RabbitConn *amqp.Connection
}

func (a *App) Close() error {
	if a.RabbitConn != nil {
		return a.RabbitConn.Close()
	}
	return nil
}
