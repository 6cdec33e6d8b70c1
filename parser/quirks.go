package parser

import "strings"

// Public identifier prefixes that force quirks or limited-quirks mode for a
// doctype, per the tree construction's "initial" insertion mode.
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
const (
	w30DTDW3HTMLStrict3En                       = "-//W3O//DTD W3 HTML Strict 3.0//EN//"
	w3cDTDHTML4TransitionalEN                   = "-/W3C/DTD HTML 4.0 Transitional/EN"
	htmlString                                  = "HTML"
	ibmxhtml                                    = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"
	silmarilDTDHTMLPro                          = "+//Silmaril//dtd html Pro v0r11 19970101//"
	dTDHTML3asWedit                             = "-//AS//DTD HTML 3.0 asWedit + extensions//"
	advaSoftDTDHTML3                            = "-//AdvaSoft Ltd//DTD HTML 3.0 asWedit + extensions//"
	iETFDTDHTML2Level1                          = "-//IETF//DTD HTML 2.0 Level 1//"
	iETFDTDHTML2Level2                          = "-//IETF//DTD HTML 2.0 Level 2//"
	iETFDTDHTML2StrictLevel1                    = "-//IETF//DTD HTML 2.0 Strict Level 1//"
	iETFDTDHTML2StrictLevel2                    = "-//IETF//DTD HTML 2.0 Strict Level 2//"
	iETFDTDHTML2Strict                          = "-//IETF//DTD HTML 2.0 Strict//"
	iETFDTDHTML2                                = "-//IETF//DTD HTML 2.0//"
	iIETFDTDHTML2E                              = "-//IETF//DTD HTML 2.1E//"
	iETFDTDHTML30                               = "-//IETF//DTD HTML 3.0//"
	iETFDTDHTML32Final                          = "-//IETF//DTD HTML 3.2 Final//"
	iETFDTDHTML32                               = "-//IETF//DTD HTML 3.2//"
	iETFDTDHTML3                                = "-//IETF//DTD HTML 3//"
	iETFDTDHTMLLevel0                           = "-//IETF//DTD HTML Level 0//"
	iETFDTDHTMLLevel1                           = "-//IETF//DTD HTML Level 1//"
	iETFDTDHTMLLevel2                           = "-//IETF//DTD HTML Level 2//"
	iETFDTDHTMLLevel3                           = "-//IETF//DTD HTML Level 3//"
	iETFDTDHTMLStrictLevel0                     = "-//IETF//DTD HTML Strict Level 0//"
	iETFDTDHTMLStrictLevel1                     = "-//IETF//DTD HTML Strict Level 1//"
	iETFDTDHTMLStrictLevel2                     = "-//IETF//DTD HTML Strict Level 2//"
	iETFDTDHTMLStrictLevel3                     = "-//IETF//DTD HTML Strict Level 3//"
	iETFDTDHTMLStrict                           = "-//IETF//DTD HTML Strict//"
	iETFDTDHTML                                 = "-//IETF//DTD HTML//"
	metriusDTDMetriusPresentational             = "-//Metrius//DTD Metrius Presentational//"
	microsoftDTDInternetExplorer2HTMLStrict     = "-//Microsoft//DTD Internet Explorer 2.0 HTML Strict//"
	microsoftDTDInternetExplorer2HTML           = "-//Microsoft//DTD Internet Explorer 2.0 HTML//"
	microsoftDTDInternetExplorer2Tables         = "-//Microsoft//DTD Internet Explorer 2.0 Tables//"
	microsoftDTDInternetExplorer3HTMLStrict     = "-//Microsoft//DTD Internet Explorer 3.0 HTML Strict//"
	microsoftDTDInternetExplorer3HTML           = "-//Microsoft//DTD Internet Explorer 3.0 HTML//"
	microsoftDTDInternetExplorer3Tables         = "-//Microsoft//DTD Internet Explorer 3.0 Tables//"
	netscapeCommCorpDTDHTML                     = "-//Netscape Comm. Corp.//DTD HTML//"
	netscapeCommCorpDTDStrictHTML               = "-//Netscape Comm. Corp.//DTD Strict HTML//"
	oReillyAssociatesDTDHTML2                   = "-//O'Reilly and Associates//DTD HTML 2.0//"
	oReillyAssociatesDTDHTMLExtended1           = "-//O'Reilly and Associates//DTD HTML Extended 1.0//"
	oReillyAssociatesDTDHTMLExtendedRelaxed1    = "-//O'Reilly and Associates//DTD HTML Extended Relaxed 1.0//"
	sQDTDHTML2HoTMetaLExtensions                = "-//SQ//DTD HTML 2.0 HoTMetaL + extensions//"
	softQuadSoftwareDTDHoTMetaLPRO              = "-//SoftQuad Software//DTD HoTMetaL PRO 6.0::19990601::extensions to HTML 4.0//"
	softQuadDTDHoTMetaLPRO                      = "-//SoftQuad//DTD HoTMetaL PRO 4.0::19971010::extensions to HTML 4.0//"
	spyglassDTDHTML2Extended                    = "-//Spyglass//DTD HTML 2.0 Extended//"
	sunMicrosystemsCorpDTDHotJavaHTML           = "-//Sun Microsystems Corp.//DTD HotJava HTML//"
	sunMicrosystemsCorpDTDHotJavaStrictHTML     = "-//Sun Microsystems Corp.//DTD HotJava Strict HTML//"
	w3cDTDHTML31                                = "-//W3C//DTD HTML 3 1995-03-24//"
	w3cDTDHTML32Draft                           = "-//W3C//DTD HTML 3.2 Draft//"
	w3cDTDHTML32Final                           = "-//W3C//DTD HTML 3.2 Final//"
	w3cDTDHTML32                                = "-//W3C//DTD HTML 3.2//"
	w3cDTDHTML32SDraft                          = "-//W3C//DTD HTML 3.2S Draft//"
	w3cDTDHTML4Frameset                         = "-//W3C//DTD HTML 4.0 Frameset//"
	w3cDTDHTML4Transitional                     = "-//W3C//DTD HTML 4.0 Transitional//"
	w3cDTDHTML401Frameset                       = "-//W3C//DTD HTML 4.01 Frameset//"
	w3cDTDHTML401Transitional                   = "-//W3C//DTD HTML 4.01 Transitional//"
	w3cDTDHTMLExperimental1996                  = "-//W3C//DTD HTML Experimental 19960712//"
	w3cDTDHTMLExperimental9704                  = "-//W3C//DTD HTML Experimental 970421//"
	w3cDTDXHTML1Frameset                        = "-//W3C//DTD XHTML 1.0 Frameset//"
	w3cDTDXHTML1Transitional                    = "-//W3C//DTD XHTML 1.0 Transitional//"
	w3cDTDW3HTML                                = "-//W3C//DTD W3 HTML//"
	w3cDTDW3HTML3                               = "-//W3O//DTD W3 HTML 3.0//"
	webTechsDTDMozillaHTML2                     = "-//WebTechs//DTD Mozilla HTML 2.0//"
	webTechsDTDMozillaHTML                      = "-//WebTechs//DTD Mozilla HTML//"
)

var knownPublicIdentifiers = []string{
	silmarilDTDHTMLPro, dTDHTML3asWedit, advaSoftDTDHTML3, iETFDTDHTML2Level1,
	iETFDTDHTML2Level2, iETFDTDHTML2StrictLevel1, iETFDTDHTML2StrictLevel2,
	iETFDTDHTML2Strict, iETFDTDHTML2, iIETFDTDHTML2E, iETFDTDHTML30,
	iETFDTDHTML32Final, iETFDTDHTML32, iETFDTDHTML3, iETFDTDHTMLLevel0,
	iETFDTDHTMLLevel1, iETFDTDHTMLLevel2, iETFDTDHTMLLevel3,
	iETFDTDHTMLStrictLevel0, iETFDTDHTMLStrictLevel1, iETFDTDHTMLStrictLevel2,
	iETFDTDHTMLStrictLevel3, iETFDTDHTMLStrict, iETFDTDHTML,
	metriusDTDMetriusPresentational, microsoftDTDInternetExplorer2HTMLStrict,
	microsoftDTDInternetExplorer2HTML, microsoftDTDInternetExplorer2Tables,
	microsoftDTDInternetExplorer3HTMLStrict, microsoftDTDInternetExplorer3HTML,
	microsoftDTDInternetExplorer3Tables, netscapeCommCorpDTDHTML,
	netscapeCommCorpDTDStrictHTML, oReillyAssociatesDTDHTML2,
	oReillyAssociatesDTDHTMLExtended1, oReillyAssociatesDTDHTMLExtendedRelaxed1,
	sQDTDHTML2HoTMetaLExtensions, softQuadSoftwareDTDHoTMetaLPRO,
	softQuadDTDHoTMetaLPRO, spyglassDTDHTML2Extended,
	sunMicrosystemsCorpDTDHotJavaHTML, sunMicrosystemsCorpDTDHotJavaStrictHTML,
	w3cDTDHTML31, w3cDTDHTML32Draft, w3cDTDHTML32Final, w3cDTDHTML32,
	w3cDTDHTML32SDraft, w3cDTDHTML4Frameset, w3cDTDHTML4Transitional,
	w3cDTDHTMLExperimental1996, w3cDTDHTMLExperimental9704, w3cDTDW3HTML,
	w3cDTDW3HTML3, webTechsDTDMozillaHTML2, webTechsDTDMozillaHTML,
}

func isForceQuirks(t *Token) bool {
	if t.ForceQuirks {
		return true
	}
	if t.TagName != "html" {
		return true
	}

	switch t.PublicIdentifier {
	case w30DTDW3HTMLStrict3En, w3cDTDHTML4TransitionalEN, htmlString:
		return true
	}

	if t.SystemIdentifier == ibmxhtml {
		return true
	}

	for _, v := range knownPublicIdentifiers {
		if strings.HasPrefix(t.PublicIdentifier, v) {
			return true
		}
	}

	if t.SystemIdentifier == missing &&
		(strings.HasPrefix(t.PublicIdentifier, w3cDTDHTML401Frameset) ||
			strings.HasPrefix(t.PublicIdentifier, w3cDTDHTML401Transitional)) {
		return true
	}

	return false
}

func isLimitedQuirks(t *Token) bool {
	if strings.HasPrefix(t.PublicIdentifier, w3cDTDXHTML1Frameset) {
		return true
	}
	if strings.HasPrefix(t.PublicIdentifier, w3cDTDXHTML1Transitional) {
		return true
	}
	if t.SystemIdentifier != missing {
		if strings.HasPrefix(t.PublicIdentifier, w3cDTDHTML401Frameset) {
			return true
		}
		if strings.HasPrefix(t.PublicIdentifier, w3cDTDHTML401Transitional) {
			return true
		}
	}
	return false
}
