package agent

import "fmt"

const intentPromptTemplate = `
You are a network assistant. Parse the user's query to extract:
    1. The commands to run on the network device (multiple commands separated by commas)
    2. The IP address of the network device, or the hostname of the network device
Ignore unnecessary words like 'run', 'execute', or 'please' if they are part of the command. If no valid commands are specified, return an empty command list.

Query: "%s"

If the IP address of the network device is included in the query, then the Response Format is:
Commands: <command1>, <command2>, ...
IP: <device_ip>

If the hostname of the network device is included in the query, then the Response Format is:
Commands: <command1>, <command2>, ...
Hostname: <device_hostname>
`

// BuildPrompt renders the fixed instruction with the operator's request embedded verbatim
func BuildPrompt(request string) string {
	return fmt.Sprintf(intentPromptTemplate, request)
}
