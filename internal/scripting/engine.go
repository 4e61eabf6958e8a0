package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding gameplay formulas.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// Core helpers first so feature scripts can use them.
	for _, sub := range []string{"core", "combat", "score"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DamageContext holds pre-packed data for one hit.
type DamageContext struct {
	Base       int     // weapon or enemy damage
	Kind       string  // "projectile" or "melee"
	Projectile string  // projectile kind, empty for melee
	Distance   float64 // from the source's position at hit time, -1 if unknown
	TargetKind string  // "player" or the enemy type
	TargetHP   int
}

// CalcDamage calls the Lua calc_damage function. It falls back to the base
// damage when the function is missing or fails.
func (e *Engine) CalcDamage(ctx DamageContext) int {
	fn := e.vm.GetGlobal("calc_damage")
	if fn == lua.LNil {
		return ctx.Base
	}

	t := e.vm.NewTable()
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("kind", lua.LString(ctx.Kind))
	t.RawSetString("projectile", lua.LString(ctx.Projectile))
	t.RawSetString("distance", lua.LNumber(ctx.Distance))
	t.RawSetString("target_kind", lua.LString(ctx.TargetKind))
	t.RawSetString("target_hp", lua.LNumber(ctx.TargetHP))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua calc_damage error", zap.Error(err))
		return ctx.Base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua calc_damage returned non-number", zap.String("type", result.Type().String()))
		return ctx.Base
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

// KillScore calls calc_kill_score(enemy_type), defaulting to 100.
func (e *Engine) KillScore(enemyType string) int {
	fn := e.vm.GetGlobal("calc_kill_score")
	if fn == lua.LNil {
		return 100
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(enemyType)); err != nil {
		e.log.Error("lua calc_kill_score error", zap.String("enemy", enemyType), zap.Error(err))
		return 100
	}
	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
