package ambient

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"
	"github.com/godbus/dbus/v5"
)

// desktop portal settings, see org.freedesktop.portal.Settings
const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalInterface = "org.freedesktop.portal.Settings"
	appearanceNS    = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
)

// color-scheme values defined by the portal
const (
	schemeNoPreference uint32 = iota
	schemeDark
	schemeLight
)

// busCaller is the part of dbus.BusObject used to read settings.
type busCaller interface {
	CallWithContext(ctx context.Context, method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Portal reads color-scheme from the freedesktop settings portal over the session bus.
type Portal struct {
	connect func() (*dbus.Conn, error)
	object  func(conn *dbus.Conn) busCaller
}

// NewPortal makes a portal detector using the shared session bus.
func NewPortal() *Portal {
	return &Portal{
		connect: dbus.SessionBus,
		object: func(conn *dbus.Conn) busCaller {
			return conn.Object(portalDest, portalPath)
		},
	}
}

// PrefersDark reads the current color-scheme. A missing bus, portal or
// "no preference" value reports the preference as unavailable.
func (p *Portal) PrefersDark(ctx context.Context) (dark, ok bool) {
	conn, err := p.connect()
	if err != nil {
		log.Printf("[DEBUG] no session bus for ambient preference: %v", err)
		return false, false
	}
	scheme, err := readColorScheme(ctx, p.object(conn))
	if err != nil {
		log.Printf("[DEBUG] can't read color-scheme from portal: %v", err)
		return false, false
	}
	return schemeToDark(scheme)
}

// Watch subscribes to SettingChanged signals and calls fn for color-scheme changes
// until ctx is canceled. Changes to "no preference" are not reported.
func (p *Portal) Watch(ctx context.Context, fn func(dark bool)) error {
	conn, err := p.connect()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	opts := []dbus.MatchOption{
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(portalInterface),
		dbus.WithMatchMember("SettingChanged"),
		dbus.WithMatchArg(0, appearanceNS),
	}
	if err := conn.AddMatchSignalContext(ctx, opts...); err != nil {
		return fmt.Errorf("failed to add SettingChanged match: %w", err)
	}

	signals := make(chan *dbus.Signal, 10)
	conn.Signal(signals)

	go func() {
		defer func() {
			conn.RemoveSignal(signals)
			_ = conn.RemoveMatchSignal(opts...)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				if dark, ok := colorSchemeSignal(sig); ok {
					fn(dark)
				}
			}
		}
	}()
	log.Printf("[DEBUG] watching portal color-scheme changes")
	return nil
}

// readColorScheme calls ReadOne, falling back to the deprecated Read on older portals.
func readColorScheme(ctx context.Context, obj busCaller) (uint32, error) {
	call := obj.CallWithContext(ctx, portalInterface+".ReadOne", 0, appearanceNS, colorSchemeKey)
	if call.Err == nil {
		var v dbus.Variant
		if err := call.Store(&v); err != nil {
			return 0, fmt.Errorf("failed to decode ReadOne reply: %w", err)
		}
		return variantScheme(v)
	}
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("portal ReadOne: %w", err)
	}

	call = obj.CallWithContext(ctx, portalInterface+".Read", 0, appearanceNS, colorSchemeKey)
	if call.Err != nil {
		return 0, fmt.Errorf("portal read failed: %w", call.Err)
	}
	var v dbus.Variant
	if err := call.Store(&v); err != nil {
		return 0, fmt.Errorf("failed to decode Read reply: %w", err)
	}
	return variantScheme(v)
}

// variantScheme unwraps the uint32 value, Read replies nest it in one more variant.
func variantScheme(v dbus.Variant) (uint32, error) {
	switch val := v.Value().(type) {
	case uint32:
		return val, nil
	case dbus.Variant:
		return variantScheme(val)
	default:
		return 0, fmt.Errorf("unexpected color-scheme type %s", v.Signature())
	}
}

func colorSchemeSignal(sig *dbus.Signal) (dark, ok bool) {
	if sig == nil || sig.Name != portalInterface+".SettingChanged" || len(sig.Body) < 3 {
		return false, false
	}
	ns, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if ns != appearanceNS || key != colorSchemeKey {
		return false, false
	}
	v, isVariant := sig.Body[2].(dbus.Variant)
	if !isVariant {
		return false, false
	}
	scheme, err := variantScheme(v)
	if err != nil {
		return false, false
	}
	return schemeToDark(scheme)
}

func schemeToDark(scheme uint32) (dark, ok bool) {
	switch scheme {
	case schemeDark:
		return true, true
	case schemeLight:
		return false, true
	default: // schemeNoPreference and unknown values
		return false, false
	}
}
