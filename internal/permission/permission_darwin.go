//go:build darwin

package permission

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework ApplicationServices -framework AVFoundation -framework Foundation

#include <ApplicationServices/ApplicationServices.h>
#import <AVFoundation/AVFoundation.h>

static int axTrusted(int prompt) {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { prompt ? kCFBooleanTrue : kCFBooleanFalse };
    CFDictionaryRef opts = CFDictionaryCreate(kCFAllocatorDefault, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    Boolean ok = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return ok ? 1 : 0;
}

// 0 unknown, 1 granted, 2 denied
static int micStatus(void) {
    AVAuthorizationStatus s = [AVCaptureDevice authorizationStatusForMediaType:AVMediaTypeAudio];
    switch (s) {
    case AVAuthorizationStatusAuthorized:
        return 1;
    case AVAuthorizationStatusDenied:
    case AVAuthorizationStatusRestricted:
        return 2;
    default:
        return 0;
    }
}

// Blocks until the user answers.
static int micRequest(void) {
    __block int granted = 0;
    dispatch_semaphore_t sem = dispatch_semaphore_create(0);
    [AVCaptureDevice requestAccessForMediaType:AVMediaTypeAudio completionHandler:^(BOOL ok) {
        granted = ok ? 1 : 0;
        dispatch_semaphore_signal(sem);
    }];
    dispatch_semaphore_wait(sem, DISPATCH_TIME_FOREVER);
    return granted;
}
*/
import "C"

import (
	"fmt"
	"os/exec"
)

var settingsURLs = map[Capability]string{
	Microphone:        "x-apple.systempreferences:com.apple.preference.security?Privacy_Microphone",
	InputInterception: "x-apple.systempreferences:com.apple.preference.security?Privacy_Accessibility",
}

// Check queries the OS without prompting.
func Check(c Capability) Status {
	switch c {
	case Microphone:
		switch C.micStatus() {
		case 1:
			return Granted
		case 2:
			return Denied
		default:
			return Unknown
		}
	case InputInterception:
		if C.axTrusted(0) == 1 {
			return Granted
		}
		return Denied
	}
	return Unknown
}

// PromptInterception shows the system accessibility prompt once.
func PromptInterception() {
	C.axTrusted(1)
}

func requestMicrophone(done func(Status)) {
	if s := Check(Microphone); s != Unknown {
		done(s)
		return
	}
	go func() {
		if C.micRequest() == 1 {
			done(Granted)
			return
		}
		done(Denied)
	}()
}

// OpenSettings opens the privacy pane for c in System Settings.
func OpenSettings(c Capability) error {
	url, ok := settingsURLs[c]
	if !ok {
		return fmt.Errorf("no settings pane for %s", c)
	}
	if err := exec.Command("open", url).Start(); err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	return nil
}
