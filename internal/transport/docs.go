// package transport contains the message syntax part of an HTTP/1.1 exchange
// as seen by a client that sends "Connection: close":
//
//	request  = request-line *( header-field CRLF ) CRLF [ message-body ]
//	response = everything the server sends until it closes the connection
//
// responses are never framed by Content-Length or chunked coding, the
// connection closing is the only message boundary (RFC9112 section 6.3, rule 8).
package transport
