package ops

import (
	"strconv"

	"github.com/dekarrin/zil/internal/zilast"
)

// registerSystemOps installs SAVE, RESTORE, RESTART, VERIFY, PRINC, DIRIN,
// and DIROUT, all delegating to the evaluator's System for persistence.
func registerSystemOps(r *Registry) {
	r.register("SAVE", opSave)
	r.register("RESTORE", opRestore)
	r.register("RESTART", opRestart)
	r.register("VERIFY", opVerify)
	r.register("PRINC", opPrinc)
	r.register("DIRIN", opDirin)
	r.register("DIROUT", opDirout)
}

const defaultSaveName = "game.sav"

func opSave(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	name := defaultSaveName
	if len(args) > 0 {
		if v, err := ev.Eval(args[0]); err == nil && v.Kind() == zilast.KindString {
			name = v.Str()
		}
	}
	if err := ev.System().Save(name); err != nil {
		ev.Print("Save failed: " + err.Error() + "\n")
		return zilast.False, nil
	}
	ev.Print("Game saved.\n")
	return zilast.True, nil
}

func opRestore(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	name := defaultSaveName
	if len(args) > 0 {
		if v, err := ev.Eval(args[0]); err == nil && v.Kind() == zilast.KindString {
			name = v.Str()
		}
	}
	if err := ev.System().Restore(name); err != nil {
		ev.Print("Restore failed: " + err.Error() + "\n")
		return zilast.False, nil
	}
	ev.Print("Game restored.\n")
	return zilast.True, nil
}

func opRestart(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if err := ev.System().Restart(); err != nil {
		return zilast.False, nil
	}
	ev.Print("Game restarted.\n")
	return zilast.True, nil
}

func opVerify(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	return boolVal(ev.System().Verify()), nil
}

func opPrinc(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.Nil, nil
	}
	v, err := ev.Eval(args[0])
	if err != nil {
		return zilast.Nil, err
	}
	ev.Print(printable(v, ev))
	return v, nil
}

func opDirin(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	stream, err := numArg(args, 0, ev)
	if err != nil {
		return zilast.Nil, err
	}
	ev.SetGlobal(zilast.Intern("INPUT-STREAM"), zilast.NewNumber(stream))
	return zilast.True, nil
}

func opDirout(args []zilast.Node, ev Evaluator) (zilast.Value, error) {
	if len(args) < 1 {
		return zilast.False, nil
	}
	stream, err := numArg(args, 0, ev)
	if err != nil {
		return zilast.Nil, err
	}
	enabled := stream > 0
	if stream < 0 {
		stream = -stream
	}
	name := zilast.Intern("OUTPUT-STREAM-" + strconv.Itoa(stream))
	ev.SetGlobal(name, boolVal(enabled))
	return zilast.True, nil
}
