//go:build windows

package wordhost

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/ankit-chaubey/fileprops/core"
	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

const progID = "Word.Application"

type wordHost struct{}

// Probe checks that Word's automation server is registered.
func Probe() (Host, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := coInit(); err != nil {
		return nil, fmt.Errorf("COM init: %v: %w", err, core.ErrHostUnavailable)
	}
	defer ole.CoUninitialize()

	if _, err := ole.CLSIDFromProgID(progID); err != nil {
		return nil, fmt.Errorf("%s not registered: %w", progID, core.ErrHostUnavailable)
	}
	return &wordHost{}, nil
}

func (h *wordHost) Name() string { return "Microsoft Word" }

// BlankProperties drives a private Word instance. Every COM object acquired
// is released by a deferred call, and Word is told to quit before
// CoUninitialize runs.
func (h *wordHost) BlankProperties(ctx context.Context, path string, names []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	// COM apartments are per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := coInit(); err != nil {
		return fmt.Errorf("COM init: %w", err)
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		return fmt.Errorf("start %s: %w", progID, err)
	}
	defer unknown.Release()

	word, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return err
	}
	defer word.Release()
	defer oleutil.CallMethod(word, "Quit")

	oleutil.PutProperty(word, "Visible", false)
	oleutil.PutProperty(word, "DisplayAlerts", 0)

	docsV, err := oleutil.GetProperty(word, "Documents")
	if err != nil {
		return err
	}
	defer docsV.Clear()

	docV, err := oleutil.CallMethod(docsV.ToIDispatch(), "Open", openArgs(abs)...)
	if err != nil {
		return fmt.Errorf("open %s: %w", abs, err)
	}
	defer docV.Clear()
	doc := docV.ToIDispatch()

	closed := false
	defer func() {
		if !closed {
			oleutil.CallMethod(doc, "Close", false)
		}
	}()

	propsV, err := oleutil.GetProperty(doc, "BuiltInDocumentProperties")
	if err != nil {
		return err
	}
	defer propsV.Clear()
	props := propsV.ToIDispatch()

	for _, name := range names {
		if err := blank(props, name); err != nil {
			return fmt.Errorf("property %s: %w", name, err)
		}
	}

	if _, err := oleutil.CallMethod(doc, "Save"); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if _, err := oleutil.CallMethod(doc, "Close"); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	closed = true
	return nil
}

func blank(props *ole.IDispatch, name string) error {
	itemV, err := oleutil.GetProperty(props, "Item", name)
	if err != nil {
		return err
	}
	defer itemV.Clear()
	_, err = oleutil.PutProperty(itemV.ToIDispatch(), "Value", "")
	return err
}

// coInit treats "already initialised on this thread" as success.
func coInit() error {
	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	if err == nil {
		return nil
	}
	if oleErr, ok := err.(*ole.OleError); ok && oleErr.Code() == 1 { // S_FALSE
		return nil
	}
	return err
}
