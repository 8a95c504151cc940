package gateway

// Version is the client library version reported in the User-Agent header.
const Version = "1.0.0"

const userAgent = "aleph-alpha-gateway-go/" + Version
