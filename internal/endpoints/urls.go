// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package endpoints knows the remote conversion service's URLs. Built-in
// defaults are layered under an optional discovered-endpoints file and
// environment-variable overrides; Resolve produces the final set the
// workflow calls.
package endpoints

// Base URLs.
const (
	AdobeBaseURL   = "https://www.adobe.com"
	AcrobatBaseURL = "https://acroipm2.adobe.com"
	IMSBaseURL     = "https://adobeid-na1.services.adobe.com"
)

// Public-facing converter pages.
const (
	PDFToWordPage  = AdobeBaseURL + "/acrobat/online/pdf-to-word.html"
	PDFToExcelPage = AdobeBaseURL + "/acrobat/online/pdf-to-excel.html"
	PDFToPPTPage   = AdobeBaseURL + "/acrobat/online/pdf-to-ppt.html"
)

// Unity workflow system.
const (
	UnityWorkflowBase    = AdobeBaseURL + "/unitylibs/core/workflow"
	UnityWorkflowJS      = UnityWorkflowBase + "/workflow.js"
	UnityWorkflowAcrobat = UnityWorkflowBase + "/workflow-acrobat"
	UnityTargetConfig    = UnityWorkflowAcrobat + "/target-config.json"
	UnityActionBinder    = UnityWorkflowAcrobat + "/action-binder.js"
)

// Acrobat web services.
const (
	AcrobatWebBase     = AcrobatBaseURL + "/acrobat-web"
	AcrobatMachineBase = AcrobatWebBase + "/machine"
	AcrobatUnityDC     = AcrobatMachineBase + "/unity-dc-frictionless"
)

// Default API endpoints. These are placeholders until network analysis
// discovers the real ones; a discovery file or environment override
// replaces them at runtime.
const (
	apiBase     = AdobeBaseURL + "/dc-api"
	APIUpload   = apiBase + "/upload"
	APIConvert  = apiBase + "/convert"
	APIStatus   = apiBase + "/status"
	APIDownload = apiBase + "/download"
)

// IMS (Identity Management Services).
const (
	IMSAuth       = IMSBaseURL + "/ims/authorize/v2"
	IMSToken      = IMSBaseURL + "/ims/token/v3"
	IMSProfile    = IMSBaseURL + "/ims/profile/v1"
	IMSCheckToken = IMSBaseURL + "/ims/check/v6/token"

	IMSGuestClientID = "dc-prod-virgoweb"
	IMSGuestScope    = "AdobeID,openid,DCAPI,additional_info.account_type,additional_info.optionalAgreements," +
		"agreement_send,agreement_sign,sign_library_write,sign_user_read,sign_user_write," +
		"agreement_read,agreement_write,widget_read,widget_write,workflow_read,workflow_write," +
		"sign_library_read,sign_user_login,sao.ACOM_ESIGN_TRIAL,ee.dcweb"
	IMSJSLVersion = "v1-v0.49.0-1-g118f48c"
	IMSReferer    = PDFToWordPage
	IMSOrigin     = "https://www.adobe.com"
)

// DefaultUserAgent is the browser fingerprint advertised by default.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/120.0.0.0 Safari/537.36"

// UserAgents are alternative fingerprints for session rotation.
var UserAgents = []string{
	// macOS Chrome
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36",
	// Windows Chrome
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36",
	// Linux Chrome
	"Mozilla/5.0 (X11; Linux x86_64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36",
}

// CommonHeaders are sent with every API request.
var CommonHeaders = map[string]string{
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
	"Accept-Encoding": "gzip, deflate, br",
	"DNT":             "1",
}

// SessionInitHeaders are required on the initial navigation request to the
// public PDF-to-Word page. The service's edge infrastructure expects a
// modern browser fingerprint when the Chrome user agent is advertised;
// without these Client Hints it responds with an HTTP/2 protocol error.
var SessionInitHeaders = map[string]string{
	"Accept": "text/html,application/xhtml+xml,application/xml;q=0.9," +
		"image/avif,image/webp,image/apng,*/*;q=0.8," +
		"application/signed-exchange;v=b3;q=0.7",
	"Accept-Language":           "en-US,en;q=0.9",
	"Accept-Encoding":           "gzip, deflate, br",
	"DNT":                       "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Upgrade-Insecure-Requests": "1",
	"sec-ch-ua":                 `"Chromium";v="120", "Not=A?Brand";v="8", "Google Chrome";v="120"`,
	"sec-ch-ua-mobile":          "?0",
	"sec-ch-ua-platform":        `"macOS"`,
}
