package constants

// veriface response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires user interaction through a dialog
// box. 0 means it does not require. 1 means it requires.

var INVALID_CREDENTIALS uint = 4010          // stay on the credentials form
var PENDING_FACE_VERIFICATION uint = 4110    // take the user to the face capture page
var FACE_NOT_DETECTED uint = 4121            // ask the user to retake the picture
var FACE_MISMATCH uint = 4131                // face or head position did not match enrolled samples
var PENDING_SECONDARY_FACTOR uint = 4210     // take the user to the national id + code page
var SECONDARY_FACTOR_INVALID uint = 4221     // wrong national id or one-time code
var FLOW_ORDER_VIOLATION uint = 4310         // restart the login flow from stage one
var SESSION_EXPIRED uint = 4320              // restart the login flow from stage one
var ACCOUNT_LOCK_ALERT_SENT uint = 4410      // too many failed face attempts, owner alerted
var ACCOUNT_CREATED uint = 9110              // account registered, enrollment may proceed

// MaxFailedAttempts caps the per-user consecutive face failure counter.
// The adaptive matching policy is defined on [0, MaxFailedAttempts].
var MaxFailedAttempts = 5

var SUPPORT_EMAIL = "help@veriface.io"
