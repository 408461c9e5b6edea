package main

import (
	"testing"

	"github.com/gofiber/fiber/v2"

	"campusfee_backend/internals/configs"
)

func TestFiberConfigIgnoresForwardedForByDefault(t *testing.T) {
	var cfg configs.Config

	fc := newFiberConfig(cfg)
	if fc.ProxyHeader != "" || fc.EnableTrustedProxyCheck || len(fc.TrustedProxies) != 0 {
		t.Fatalf("proxy settings without trusted proxies: %q %v %v", fc.ProxyHeader, fc.EnableTrustedProxyCheck, fc.TrustedProxies)
	}
}

func TestFiberConfigTrustsConfiguredProxies(t *testing.T) {
	var cfg configs.Config
	cfg.HTTP.TrustedProxies = "10.0.0.0/8"

	fc := newFiberConfig(cfg)
	if fc.ProxyHeader != fiber.HeaderXForwardedFor || !fc.EnableTrustedProxyCheck {
		t.Fatalf("proxy header not enabled: %q %v", fc.ProxyHeader, fc.EnableTrustedProxyCheck)
	}
	if len(fc.TrustedProxies) != 1 || fc.TrustedProxies[0] != "10.0.0.0/8" {
		t.Fatalf("trusted proxies: %v", fc.TrustedProxies)
	}
}
