//go:build darwin

package hotkey

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation

#include <stdint.h>
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>

extern CGEventRef parrotTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFMachPortRef parrotCreateTap(uintptr_t handle) {
    CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp);
    return CGEventTapCreate(
        kCGSessionEventTap,
        kCGHeadInsertEventTap,
        kCGEventTapOptionDefault,
        mask,
        parrotTapCallback,
        (void *)handle
    );
}

static CFRunLoopSourceRef parrotAttachTap(CFMachPortRef tap) {
    CFRunLoopSourceRef source = CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
    CFRunLoopAddSource(CFRunLoopGetCurrent(), source, kCFRunLoopCommonModes);
    CGEventTapEnable(tap, true);
    return source;
}

static void parrotReleaseTap(CFMachPortRef tap, CFRunLoopSourceRef source) {
    CGEventTapEnable(tap, false);
    CFMachPortInvalidate(tap);
    if (source != NULL) {
        CFRelease(source);
    }
    CFRelease(tap);
}
*/
import "C"

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"runtime/cgo"
	"sync"
	"unsafe"

	"parrot/internal/filter"
	"parrot/internal/hotkey/keyevent"
	"parrot/internal/shortcut"
)

// EventTap - активный CGEventTap. Callback получает только cgo.Handle,
// а не указатель на Go-объект.
type EventTap struct {
	mu      sync.Mutex
	handle  cgo.Handle
	port    C.CFMachPortRef
	loop    C.CFRunLoopRef
	handler filter.Handler
	done    chan struct{}
}

func newTap(shortcut.Chord) Tap {
	return &EventTap{}
}

// Install создаёт tap на отдельном потоке со своим CFRunLoop. Без
// разрешения Accessibility возвращает filter.ErrFilterUnavailable.
func (t *EventTap) Install(h filter.Handler) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handler != nil {
		return errors.New("event tap: already installed")
	}
	t.handler = h
	t.handle = cgo.NewHandle(t)

	ready := make(chan error, 1)
	t.done = make(chan struct{})
	go t.run(ready)

	if err := <-ready; err != nil {
		t.handle.Delete()
		t.handler = nil
		return err
	}
	log.Printf("Event tap установлен")
	return nil
}

func (t *EventTap) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.done)

	port := C.parrotCreateTap(C.uintptr_t(t.handle))
	if port == 0 {
		ready <- fmt.Errorf("%w: CGEventTapCreate returned NULL", filter.ErrFilterUnavailable)
		return
	}
	source := C.parrotAttachTap(port)
	t.port = port
	t.loop = C.CFRunLoopGetCurrent()
	ready <- nil

	C.CFRunLoopRun()
	C.parrotReleaseTap(port, source)
}

// Uninstall останавливает run loop и освобождает tap.
func (t *EventTap) Uninstall() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.handler == nil {
		return nil
	}
	C.CFRunLoopStop(t.loop)
	<-t.done

	t.handle.Delete()
	t.handler = nil
	t.port = 0
	t.loop = 0
	log.Printf("Event tap снят")
	return nil
}

// Rebind ничего не делает: tap видит все клавиши, а аккорд читает фильтр.
func (t *EventTap) Rebind(shortcut.Chord) error {
	return nil
}

//export parrotTapCallback
func parrotTapCallback(proxy C.CGEventTapProxy, typ C.CGEventType, event C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	t, ok := cgo.Handle(uintptr(refcon)).Value().(*EventTap)
	if !ok {
		return event
	}

	switch typ {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		// Система отключает медленный tap, включаем обратно.
		log.Printf("Event tap отключён системой (%d), включаем", typ)
		if t.port != 0 {
			C.CGEventTapEnable(t.port, true)
		}
		return event
	case C.kCGEventKeyDown, C.kCGEventKeyUp:
	default:
		return event
	}

	ev := filter.KeyEvent{
		Type:      filter.KeyDown,
		KeyCode:   uint16(C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventKeycode)),
		Modifiers: keyevent.ModifiersFromCGFlags(uint64(C.CGEventGetFlags(event))),
		Repeat:    C.CGEventGetIntegerValueField(event, C.kCGKeyboardEventAutorepeat) != 0,
	}
	if typ == C.kCGEventKeyUp {
		ev.Type = filter.KeyUp
	}

	if t.handler.Handle(ev) == filter.Consume {
		return 0
	}
	return event
}
